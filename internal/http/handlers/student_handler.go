package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bbifather/student-orders-backend/internal/dto"
	"github.com/bbifather/student-orders-backend/internal/http/handlers/common"
	"github.com/bbifather/student-orders-backend/internal/http/middleware"
	"github.com/bbifather/student-orders-backend/internal/service"
)

type StudentHandler struct {
	students *service.StudentService
}

// NewStudentHandler создаёт новый хэндлер студентов.
func NewStudentHandler(students *service.StudentService) *StudentHandler {
	return &StudentHandler{students: students}
}

// ListStudents обрабатывает GET /api/students.
func (h *StudentHandler) ListStudents(c *gin.Context) {
	students, err := h.students.ListStudents(c.Request.Context(), middleware.ActorFromContext(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"students": students})
}

// SaveChatID обрабатывает POST /api/save-chat-id: бот сообщает
// идентификатор личного чата студента.
func (h *StudentHandler) SaveChatID(c *gin.Context) {
	var req dto.SaveChatIDRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.students.SaveChatID(c.Request.Context(), req.Telegram, req.ChatID, req.Name); err != nil {
		c.Error(err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "чат привязан", nil)
}
