package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bbifather/student-orders-backend/internal/models"
	"github.com/bbifather/student-orders-backend/internal/service"
)

func sampleOrder(status string) *models.Order {
	return &models.Order{
		Title:       "ПР 1-3 по статметодам",
		ActualPrice: 3750,
		Status:      status,
		Deadline:    time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Student: &models.Student{
			Name:      "Иван Иванов",
			GroupName: "БИ-21",
			Telegram:  "ivan",
		},
	}
}

func TestAdminMessage_OrderCreated(t *testing.T) {
	msg := adminMessage(service.Event{Order: sampleOrder(models.OrderStatusNew), Kind: service.EventOrderCreated})

	assert.Contains(t, msg, "Новый заказ")
	assert.Contains(t, msg, "ПР 1-3 по статметодам")
	assert.Contains(t, msg, "@ivan")
	assert.Contains(t, msg, "15.09.2026")
	assert.Contains(t, msg, "3750")
}

func TestAdminMessage_OrderCreated_PriceOnRequest(t *testing.T) {
	order := sampleOrder(models.OrderStatusNew)
	order.ActualPrice = 0

	msg := adminMessage(service.Event{Order: order, Kind: service.EventOrderCreated})
	assert.Contains(t, msg, "по договорённости")
}

func TestAdminMessage_PaymentClaimed(t *testing.T) {
	msg := adminMessage(service.Event{Order: sampleOrder(models.OrderStatusWaitingPayment), Kind: service.EventPaymentClaimed})
	assert.Contains(t, msg, "сообщил об оплате")
	assert.Contains(t, msg, "3750")
}

func TestStudentMessage_StatusChanged(t *testing.T) {
	cases := map[string]string{
		models.OrderStatusWaitingPayment: "ожидает оплаты",
		models.OrderStatusPaid:           "подтверждена",
		models.OrderStatusInProgress:     "взят в работу",
		models.OrderStatusCompleted:      "выполнен",
		models.OrderStatusNeedsRevision:  "доработку",
		models.OrderStatusCancelled:      "отменён",
	}
	for status, fragment := range cases {
		msg := studentMessage(service.Event{Order: sampleOrder(status), Kind: service.EventStatusChanged})
		assert.Contains(t, msg, fragment, "статус %s", status)
	}
}

func TestStudentMessage_PriceSet(t *testing.T) {
	msg := studentMessage(service.Event{Order: sampleOrder(models.OrderStatusWaitingPayment), Kind: service.EventPriceSet})
	assert.Contains(t, msg, "3750")
	assert.Contains(t, msg, "Я оплатил")
}

func TestNilNotifier_DoesNotPanic(t *testing.T) {
	var n *TelegramNotifier

	assert.NotPanics(t, func() {
		n.Notify(nil, service.Event{Order: sampleOrder(models.OrderStatusNew), Kind: service.EventOrderCreated, Audience: service.AudienceBoth})
	})
}
