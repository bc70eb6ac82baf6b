package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bbifather/student-orders-backend/internal/catalog"
	"github.com/bbifather/student-orders-backend/internal/dto"
	"github.com/bbifather/student-orders-backend/internal/http/handlers/common"
)

type CatalogHandler struct {
	resolver *catalog.Resolver
}

// NewCatalogHandler создаёт новый хэндлер каталога.
func NewCatalogHandler(resolver *catalog.Resolver) *CatalogHandler {
	return &CatalogHandler{resolver: resolver}
}

// GetCatalog обрабатывает GET /api/subjects: курсы и предметы целиком.
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"courses":  h.resolver.Courses(),
		"subjects": h.resolver.Subjects(),
	})
}

// GetSubject обрабатывает GET /api/subjects/:id.
func (h *CatalogHandler) GetSubject(c *gin.Context) {
	subject, err := h.resolver.SubjectByID(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, subject)
}

// Quote обрабатывает POST /api/quote: предварительный расчёт стоимости
// выбора без создания заказа.
func (h *CatalogHandler) Quote(c *gin.Context) {
	var req dto.QuoteRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	quote, err := h.resolver.Quote(catalog.Selection{
		SubjectID:       req.SubjectID,
		SelectedWorkIDs: req.SelectedWorkIDs,
		IsFullCourse:    req.IsFullCourse,
		CustomSubject:   req.CustomSubject,
		CustomWork:      req.CustomWork,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, quote)
}
