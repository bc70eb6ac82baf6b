package service

import (
	"github.com/bbifather/student-orders-backend/internal/models"
)

// Actor описывает участника, выполняющего операцию. Роль и идентификация
// приходят от внешнего слоя авторизации и передаются явно в каждый вызов:
// ядро не хранит глобального "текущего пользователя".
type Actor struct {
	Role     string
	Telegram string
}

// IsAdmin сообщает, является ли участник администратором.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// IsStudent сообщает, является ли участник студентом.
func (a Actor) IsStudent() bool {
	return a.Role == models.RoleStudent
}

// IsExecutor сообщает, является ли участник исполнителем.
func (a Actor) IsExecutor() bool {
	return a.Role == models.RoleExecutor
}

// CanManage сообщает, может ли участник управлять выполнением заказа:
// администратор — любым, исполнитель — только закреплённым за собой.
func (a Actor) CanManage(order *models.Order) bool {
	if a.IsAdmin() {
		return true
	}
	if a.IsExecutor() && order.ExecutorTelegram != nil && *order.ExecutorTelegram == a.Telegram {
		return true
	}
	return false
}
