package notify

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/bbifather/student-orders-backend/internal/logger"
	"github.com/bbifather/student-orders-backend/internal/models"
	"github.com/bbifather/student-orders-backend/internal/service"
)

// TelegramNotifier доставляет события заказов администратору и студенту
// через Telegram-бота. Ошибки доставки только логируются: уведомления
// не должны влиять на исход операции.
type TelegramNotifier struct {
	bot         *tgbotapi.BotAPI
	adminChatID int64
}

// NewTelegramNotifier создаёт канал уведомлений. При пустом токене
// возвращается nil-нотификатор: сервис продолжит работать, события
// будут попадать только в логи.
func NewTelegramNotifier(token string, adminChatID int64) (*TelegramNotifier, error) {
	if token == "" {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram notifier: %w", err)
	}
	if logger.Log != nil {
		logger.Log.WithField("bot", bot.Self.UserName).Info("Telegram-бот подключён")
	}
	return &TelegramNotifier{bot: bot, adminChatID: adminChatID}, nil
}

// Notify реализует service.Notifier.
func (n *TelegramNotifier) Notify(ctx context.Context, event service.Event) {
	if n == nil || n.bot == nil {
		if logger.Log != nil {
			logger.Log.WithFields(map[string]interface{}{
				"kind":     string(event.Kind),
				"order_id": event.Order.ID,
			}).Info("уведомление пропущено: Telegram не настроен")
		}
		return
	}

	if event.Audience == service.AudienceAdmin || event.Audience == service.AudienceBoth {
		n.send(n.adminChatID, adminMessage(event))
	}
	if event.Audience == service.AudienceStudent || event.Audience == service.AudienceBoth {
		n.sendToStudent(event)
	}
}

func (n *TelegramNotifier) sendToStudent(event service.Event) {
	student := event.Order.Student
	if student == nil || student.ChatID == nil || *student.ChatID == "" {
		if logger.Log != nil {
			logger.Log.WithField("order_id", event.Order.ID).
				Debug("у студента нет привязанного чата, личное уведомление пропущено")
		}
		return
	}
	chatID, err := strconv.ParseInt(*student.ChatID, 10, 64)
	if err != nil {
		if logger.Log != nil {
			logger.Log.WithField("chat_id", *student.ChatID).
				Warn("некорректный идентификатор чата студента")
		}
		return
	}
	text := studentMessage(event)
	if text == "" {
		return
	}
	n.send(chatID, text)
}

func (n *TelegramNotifier) send(chatID int64, text string) {
	if chatID == 0 || text == "" {
		return
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := n.bot.Send(msg); err != nil && logger.Log != nil {
		logger.Log.WithField("chat_id", chatID).WithError(err).
			Error("не удалось отправить Telegram-уведомление")
	}
}

// adminMessage собирает текст для административного чата.
func adminMessage(event service.Event) string {
	o := event.Order
	switch event.Kind {
	case service.EventOrderCreated:
		var b strings.Builder
		b.WriteString("🆕 Новый заказ\n\n")
		fmt.Fprintf(&b, "📝 %s\n", o.Title)
		if o.Student != nil {
			fmt.Fprintf(&b, "👤 %s (@%s), группа %s\n", o.Student.Name, o.Student.Telegram, o.Student.GroupName)
		}
		fmt.Fprintf(&b, "📅 Дедлайн: %s\n", o.Deadline.Format("02.01.2006"))
		if o.ActualPrice > 0 {
			fmt.Fprintf(&b, "💰 Стоимость: %.0f ₽", o.ActualPrice)
		} else {
			b.WriteString("💰 Стоимость: по договорённости")
		}
		return b.String()
	case service.EventPaymentClaimed:
		return fmt.Sprintf("💳 Студент сообщил об оплате заказа «%s» (%.0f ₽). Проверьте поступление и подтвердите.", o.Title, o.ActualPrice)
	case service.EventRevisionRequested:
		comment := ""
		if o.RevisionComment != nil {
			comment = *o.RevisionComment
		}
		return fmt.Sprintf("🔄 Запрошена доработка по заказу «%s»:\n%s", o.Title, comment)
	default:
		return ""
	}
}

// studentMessage собирает текст личного уведомления студенту.
func studentMessage(event service.Event) string {
	o := event.Order
	switch event.Kind {
	case service.EventOrderCreated:
		return fmt.Sprintf("✅ Ваш заказ «%s» принят! Мы свяжемся с вами после расчёта стоимости.", o.Title)
	case service.EventPriceSet:
		return fmt.Sprintf("💰 По заказу «%s» выставлен счёт: %.0f ₽. После оплаты нажмите «Я оплатил» в личном кабинете.", o.Title, o.ActualPrice)
	case service.EventMarkedPaid:
		return fmt.Sprintf("✅ Оплата заказа «%s» подтверждена. Скоро возьмём его в работу!", o.Title)
	case service.EventPaymentClaimed:
		return fmt.Sprintf("💳 Мы получили ваше сообщение об оплате заказа «%s» и проверяем поступление.", o.Title)
	case service.EventStatusChanged:
		return statusChangedMessage(o)
	case service.EventFilesDelivered:
		return fmt.Sprintf("📎 Заказ «%s» выполнен! Готовые файлы доступны в личном кабинете.", o.Title)
	case service.EventRevisionRequested:
		return fmt.Sprintf("🔄 Ваш запрос на доработку заказа «%s» принят.", o.Title)
	default:
		return ""
	}
}

func statusChangedMessage(o *models.Order) string {
	switch o.Status {
	case models.OrderStatusWaitingPayment:
		return fmt.Sprintf("💰 Заказ «%s» ожидает оплаты: %.0f ₽.", o.Title, o.ActualPrice)
	case models.OrderStatusPaid:
		return fmt.Sprintf("✅ Оплата заказа «%s» подтверждена.", o.Title)
	case models.OrderStatusInProgress:
		return fmt.Sprintf("🛠 Заказ «%s» взят в работу.", o.Title)
	case models.OrderStatusCompleted:
		return fmt.Sprintf("🎉 Заказ «%s» выполнен! Файлы доступны в личном кабинете.", o.Title)
	case models.OrderStatusNeedsRevision:
		return fmt.Sprintf("🔄 Заказ «%s» отправлен на доработку.", o.Title)
	case models.OrderStatusQueued:
		return fmt.Sprintf("⏳ Заказ «%s» поставлен в очередь.", o.Title)
	case models.OrderStatusUnderReview:
		return fmt.Sprintf("🔍 Заказ «%s» на проверке.", o.Title)
	case models.OrderStatusCancelled:
		return fmt.Sprintf("❌ Заказ «%s» отменён.", o.Title)
	default:
		return fmt.Sprintf("ℹ️ Статус заказа «%s» изменён: %s.", o.Title, o.Status)
	}
}
