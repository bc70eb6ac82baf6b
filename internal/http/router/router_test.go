package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/bbifather/student-orders-backend/internal/config"
	"github.com/bbifather/student-orders-backend/internal/http/handlers"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Env:             "test",
		AllowedOrigins:  []string{},
		RateLimitLimit:  100,
		RateLimitPeriod: time.Minute,
	}
	return SetupRouter(
		cfg,
		&handlers.CatalogHandler{},
		&handlers.OrderHandler{},
		&handlers.FileHandler{},
		&handlers.StudentHandler{},
		&handlers.HealthHandler{},
	)
}

func TestRouter_MarkPaidIsPatch(t *testing.T) {
	r := testRouter()

	// PATCH доходит до ролевой проверки (403 без роли администратора),
	// значит маршрут зарегистрирован именно на этот метод.
	req, _ := http.NewRequest("PATCH", "/api/orders/9d2c4f3e-4a7b-4e59-bb1a-000000000001/paid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req, _ = http.NewRequest("POST", "/api/orders/9d2c4f3e-4a7b-4e59-bb1a-000000000001/paid", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_StatusEndpointRegistered(t *testing.T) {
	r := testRouter()

	req, _ := http.NewRequest("PATCH", "/api/orders/not-a-uuid/status", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
