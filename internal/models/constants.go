package models

// OrderStatus константы статусов заказов
const (
	OrderStatusNew            = "new"
	OrderStatusWaitingPayment = "waiting_payment"
	OrderStatusPaid           = "paid"
	OrderStatusInProgress     = "in_progress"
	OrderStatusCompleted      = "completed"
	OrderStatusNeedsRevision  = "needs_revision"
	OrderStatusQueued         = "queued"
	OrderStatusUnderReview    = "under_review"
	OrderStatusCancelled      = "cancelled"
)

// ActorRole константы ролей участников
const (
	RoleStudent  = "student"
	RoleExecutor = "executor"
	RoleAdmin    = "admin"
)

// ValidOrderStatuses список валидных статусов заказов
var ValidOrderStatuses = map[string]struct{}{
	OrderStatusNew:            {},
	OrderStatusWaitingPayment: {},
	OrderStatusPaid:           {},
	OrderStatusInProgress:     {},
	OrderStatusCompleted:      {},
	OrderStatusNeedsRevision:  {},
	OrderStatusQueued:         {},
	OrderStatusUnderReview:    {},
	OrderStatusCancelled:      {},
}

// ValidActorRoles список валидных ролей
var ValidActorRoles = map[string]struct{}{
	RoleStudent:  {},
	RoleExecutor: {},
	RoleAdmin:    {},
}
