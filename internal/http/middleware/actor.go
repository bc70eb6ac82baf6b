package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/bbifather/student-orders-backend/internal/models"
	"github.com/bbifather/student-orders-backend/internal/service"
	"github.com/bbifather/student-orders-backend/internal/validation"
)

const actorContextKey = "actor"

// ActorResolver извлекает действующее лицо из заголовков запроса.
// Роль и Telegram приходят от фронтенда: проверка личности лежит вне
// этого сервиса, здесь они используются только для ролевых проверок
// операций.
func ActorResolver() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetHeader("X-Actor-Role")
		if _, ok := models.ValidActorRoles[role]; !ok {
			role = models.RoleStudent
		}
		actor := service.Actor{
			Role:     role,
			Telegram: validation.NormalizeTelegram(c.GetHeader("X-Actor-Telegram")),
		}
		c.Set(actorContextKey, actor)
		c.Next()
	}
}

// ActorFromContext возвращает действующее лицо запроса.
func ActorFromContext(c *gin.Context) service.Actor {
	if v, ok := c.Get(actorContextKey); ok {
		if actor, ok := v.(service.Actor); ok {
			return actor
		}
	}
	return service.Actor{Role: models.RoleStudent}
}
