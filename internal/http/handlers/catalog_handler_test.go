package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbifather/student-orders-backend/internal/catalog"
)

func testCatalogHandler(t *testing.T) *CatalogHandler {
	t.Helper()
	resolver, err := catalog.NewResolver(catalog.DefaultCourses(), catalog.DefaultSubjects())
	require.NoError(t, err)
	return NewCatalogHandler(resolver)
}

func TestCatalogHandler_GetCatalog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := testCatalogHandler(t)
	r.GET("/subjects", handler.GetCatalog)

	req, _ := http.NewRequest("GET", "/subjects", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Courses  []catalog.Course  `json:"courses"`
		Subjects []catalog.Subject `json:"subjects"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Courses)
	assert.NotEmpty(t, body.Subjects)
}

func TestCatalogHandler_Quote(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := testCatalogHandler(t)
	r.POST("/quote", handler.Quote)

	payload := `{"subject_id":"stat-methods","selected_work_ids":["stat-1","stat-2","stat-3"]}`
	req, _ := http.NewRequest("POST", "/quote", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var quote catalog.Quote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quote))
	assert.Equal(t, float64(3750), quote.Total)
	assert.Len(t, quote.LineItems, 3)
}

func TestCatalogHandler_Quote_BadJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := testCatalogHandler(t)
	r.POST("/quote", handler.Quote)

	req, _ := http.NewRequest("POST", "/quote", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_GetOrder_InvalidUUID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &OrderHandler{orders: nil}
	r.GET("/orders/:id", handler.GetOrder)

	req, _ := http.NewRequest("GET", "/orders/invalid-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_SetPrice_BadBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &OrderHandler{orders: nil}
	r.PATCH("/orders/:id/price", handler.SetPrice)

	req, _ := http.NewRequest("PATCH", "/orders/9d2c4f3e-4a7b-4e59-bb1a-000000000001/price", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
