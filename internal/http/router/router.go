package router

import (
	"github.com/gin-gonic/gin"

	"github.com/bbifather/student-orders-backend/internal/config"
	"github.com/bbifather/student-orders-backend/internal/http/handlers"
	"github.com/bbifather/student-orders-backend/internal/http/middleware"
)

// SetupRouter собирает маршруты сервиса заказов.
func SetupRouter(
	cfg *config.Config,
	catalogHandler *handlers.CatalogHandler,
	orderHandler *handlers.OrderHandler,
	fileHandler *handlers.FileHandler,
	studentHandler *handlers.StudentHandler,
	healthHandler *handlers.HealthHandler,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.ActorResolver())

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")

	// Каталог предметов и предварительный расчёт.
	api.GET("/subjects", catalogHandler.GetCatalog)
	api.GET("/subjects/:id", catalogHandler.GetSubject)
	api.POST("/quote", catalogHandler.Quote)

	// Студенты.
	api.GET("/students", studentHandler.ListStudents)
	api.POST("/save-chat-id", studentHandler.SaveChatID)

	// Заказы. Публичное создание прикрыто rate limit'ом.
	orders := api.Group("/orders")
	createRateLimit := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)
	{
		orders.POST("", createRateLimit, orderHandler.CreateOrder)
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/all", orderHandler.ListAllOrders)

		byID := orders.Group("/:id", middleware.UUIDValidator("id"))
		{
			byID.GET("", orderHandler.GetOrder)
			byID.PATCH("/price", orderHandler.SetPrice)
			byID.PATCH("/status", orderHandler.UpdateStatus)
			byID.PATCH("/paid", orderHandler.MarkPaid)
			byID.POST("/payment-notification", orderHandler.PaymentNotification)
			byID.POST("/request-revision", orderHandler.RequestRevision)
			byID.POST("/resolve-revision", orderHandler.ResolveRevision)
			byID.PATCH("/executor", orderHandler.AssignExecutor)
			byID.DELETE("/executor", orderHandler.ReleaseExecutor)
			byID.PATCH("/admin", orderHandler.AdminUpdate)

			byID.POST("/files", fileHandler.UploadFiles)
			byID.GET("/download/:filename", fileHandler.DownloadFile)
			byID.GET("/download-all", fileHandler.DownloadAll)
		}
	}

	return r
}
