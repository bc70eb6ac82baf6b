package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/bbifather/student-orders-backend/internal/models"
	"github.com/bbifather/student-orders-backend/internal/pkg/apperror"
	"github.com/bbifather/student-orders-backend/internal/service"
)

func TestActorResolver(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ActorResolver())

	var got service.Actor
	r.GET("/", func(c *gin.Context) {
		got = ActorFromContext(c)
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest("GET", "/", nil)
	req.Header.Set("X-Actor-Role", models.RoleAdmin)
	req.Header.Set("X-Actor-Telegram", "@boss")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, models.RoleAdmin, got.Role)
	assert.Equal(t, "boss", got.Telegram)
}

func TestActorResolver_UnknownRoleFallsBackToStudent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ActorResolver())

	var got service.Actor
	r.GET("/", func(c *gin.Context) {
		got = ActorFromContext(c)
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest("GET", "/", nil)
	req.Header.Set("X-Actor-Role", "superuser")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, models.RoleStudent, got.Role)
}

func TestErrorHandler_AppError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/", func(c *gin.Context) {
		c.Error(apperror.ErrOrderNotFound)
	})

	req, _ := http.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestErrorHandler_MasksInternal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/", func(c *gin.Context) {
		c.Error(assert.AnError)
	})

	req, _ := http.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "внутренняя ошибка")
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}
