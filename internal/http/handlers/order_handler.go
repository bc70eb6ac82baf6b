package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bbifather/student-orders-backend/internal/dto"
	"github.com/bbifather/student-orders-backend/internal/http/handlers/common"
	"github.com/bbifather/student-orders-backend/internal/http/middleware"
	"github.com/bbifather/student-orders-backend/internal/repository"
	"github.com/bbifather/student-orders-backend/internal/service"
	"github.com/bbifather/student-orders-backend/internal/validation"
)

type OrderHandler struct {
	orders *service.OrderService
}

// NewOrderHandler создаёт новый хэндлер заказов.
func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// CreateOrder обрабатывает POST /api/orders.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	deadline, err := validation.ParseDeadline(req.Deadline)
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), service.CreateOrderInput{
		StudentName:     req.StudentName,
		StudentGroup:    req.StudentGroup,
		StudentTelegram: req.StudentTelegram,
		SubjectID:       req.SubjectID,
		SelectedWorkIDs: req.SelectedWorkIDs,
		IsFullCourse:    req.IsFullCourse,
		CustomSubject:   req.CustomSubject,
		CustomWork:      req.CustomWork,
		Title:           req.Title,
		Description:     req.Description,
		InputData:       req.InputData,
		VariantInfo:     req.VariantInfo,
		Deadline:        deadline,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetOrder обрабатывает GET /api/orders/:id.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// ListOrders обрабатывает GET /api/orders с фильтрами и пагинацией.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.orders.ListOrders(c.Request.Context(), repository.ListParams{
		Telegram: validation.NormalizeTelegram(c.Query("telegram")),
		Status:   c.Query("status"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ListOrdersResponse{
		Orders: result.Orders,
		Total:  result.Total,
		Page:   page,
		Limit:  limit,
	})
}

// ListAllOrders обрабатывает GET /api/orders/all: полный список без
// пагинации, собираемый постраничными чтениями.
func (h *OrderHandler) ListAllOrders(c *gin.Context) {
	orders, err := h.orders.ListAllOrders(c.Request.Context(), validation.NormalizeTelegram(c.Query("telegram")), 200)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "total": len(orders)})
}

// SetPrice обрабатывает PATCH /api/orders/:id/price.
func (h *OrderHandler) SetPrice(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.SetPriceRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	order, err := h.orders.SetPrice(c.Request.Context(), middleware.ActorFromContext(c), id, req.Price)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateStatus обрабатывает PATCH /api/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.UpdateStatusRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), middleware.ActorFromContext(c), id, req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// MarkPaid обрабатывает PATCH /api/orders/:id/paid: подтверждение оплаты
// администратором.
func (h *OrderHandler) MarkPaid(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	order, err := h.orders.MarkPaid(c.Request.Context(), middleware.ActorFromContext(c), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// PaymentNotification обрабатывает POST /api/orders/:id/payment-notification:
// студент сообщает, что оплатил заказ.
func (h *OrderHandler) PaymentNotification(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	order, err := h.orders.ClaimPayment(c.Request.Context(), middleware.ActorFromContext(c), id)
	if err != nil {
		c.Error(err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "уведомление об оплате отправлено", order)
}

// RequestRevision обрабатывает POST /api/orders/:id/request-revision.
func (h *OrderHandler) RequestRevision(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.RevisionRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	order, err := h.orders.RequestRevision(c.Request.Context(), middleware.ActorFromContext(c), id, req.Comment, req.Grade)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// ResolveRevision обрабатывает POST /api/orders/:id/resolve-revision.
func (h *OrderHandler) ResolveRevision(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.ResolveRevisionRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	order, err := h.orders.ResolveRevision(c.Request.Context(), middleware.ActorFromContext(c), id, req.Status, req.ClearRevision)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// AssignExecutor обрабатывает PATCH /api/orders/:id/executor.
func (h *OrderHandler) AssignExecutor(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.AssignExecutorRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	order, err := h.orders.ClaimExecutor(c.Request.Context(), middleware.ActorFromContext(c), id, req.ExecutorTelegram, req.PayoutAmount)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// ReleaseExecutor обрабатывает DELETE /api/orders/:id/executor.
func (h *OrderHandler) ReleaseExecutor(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	order, err := h.orders.ReleaseExecutor(c.Request.Context(), middleware.ActorFromContext(c), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// AdminUpdate обрабатывает PATCH /api/orders/:id/admin: правка любых
// полей заказа администратором.
func (h *OrderHandler) AdminUpdate(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.AdminUpdateRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	order, err := h.orders.AdminOverride(c.Request.Context(), middleware.ActorFromContext(c), id, service.AdminPatch{
		Title:            req.Title,
		Description:      req.Description,
		InputData:        req.InputData,
		VariantInfo:      req.VariantInfo,
		Deadline:         req.Deadline,
		ActualPrice:      req.ActualPrice,
		PayoutAmount:     req.PayoutAmount,
		ExecutorTelegram: req.ExecutorTelegram,
		Status:           req.Status,
		IsPaid:           req.IsPaid,
		RevisionComment:  req.RevisionComment,
		RevisionGrade:    req.RevisionGrade,
		SelectedWorkIDs:  req.SelectedWorkIDs,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, order)
}
