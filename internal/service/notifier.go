package service

import (
	"context"

	"github.com/bbifather/student-orders-backend/internal/models"
)

// EventKind сообщает тип события жизненного цикла заказа.
type EventKind string

const (
	EventOrderCreated      EventKind = "orderCreated"
	EventPriceSet          EventKind = "priceSet"
	EventPaymentClaimed    EventKind = "paymentClaimed"
	EventMarkedPaid        EventKind = "markedPaid"
	EventStatusChanged     EventKind = "statusChanged"
	EventRevisionRequested EventKind = "revisionRequested"
	EventFilesDelivered    EventKind = "filesDelivered"
)

// Audience сообщает, кому адресовано событие.
type Audience string

const (
	AudienceAdmin   Audience = "admin"
	AudienceStudent Audience = "student"
	AudienceBoth    Audience = "both"
)

// Event описывает одно уведомление; содержимое сообщения собирает канал
// доставки, ядру важны только заказ, тип и адресат.
type Event struct {
	Order    *models.Order
	Kind     EventKind
	Audience Audience
}

// Notifier — внешний канал доставки уведомлений. Вызовы fire-and-forget:
// ошибки доставки логируются каналом и никогда не влияют на исход
// операции ядра.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}
