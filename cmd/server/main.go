package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bbifather/student-orders-backend/internal/catalog"
	"github.com/bbifather/student-orders-backend/internal/config"
	"github.com/bbifather/student-orders-backend/internal/db"
	httpHandlers "github.com/bbifather/student-orders-backend/internal/http/handlers"
	httpRouter "github.com/bbifather/student-orders-backend/internal/http/router"
	"github.com/bbifather/student-orders-backend/internal/logger"
	"github.com/bbifather/student-orders-backend/internal/notify"
	"github.com/bbifather/student-orders-backend/internal/repository"
	"github.com/bbifather/student-orders-backend/internal/service"
	"github.com/bbifather/student-orders-backend/internal/storage"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	logLevel := "info"
	if cfg.Env == "development" {
		logLevel = "debug"
		logger.Init(logLevel)
		logger.SetTextFormatter()
	} else {
		logger.Init(logLevel)
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Каталог предметов и резолвер стоимости.
	resolver, err := catalog.NewResolver(catalog.DefaultCourses(), catalog.DefaultSubjects())
	if err != nil {
		log.Fatalf("main: некорректный каталог предметов: %v", err)
	}

	fileStorage, err := storage.NewFileStorage(cfg.FileStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	// Репозитории.
	orderRepo := repository.NewOrderRepository(dbConn)
	studentRepo := repository.NewStudentRepository(dbConn)

	// Telegram-уведомления. Без токена события уходят только в лог.
	notifier, err := notify.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramAdminChatID)
	if err != nil {
		log.Fatalf("main: не удалось подключить Telegram-бота: %v", err)
	}

	// Сервисы.
	var notifierIface service.Notifier
	if notifier != nil {
		notifierIface = notifier
	}
	orderService := service.NewOrderService(orderRepo, studentRepo, resolver, notifierIface, cfg.PayoutShare)
	studentService := service.NewStudentService(studentRepo)

	// HTTP хэндлеры.
	catalogHandler := httpHandlers.NewCatalogHandler(resolver)
	orderHandler := httpHandlers.NewOrderHandler(orderService)
	fileHandler := httpHandlers.NewFileHandler(orderService, fileStorage)
	studentHandler := httpHandlers.NewStudentHandler(studentService)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, catalogHandler, orderHandler, fileHandler, studentHandler, healthHandler)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
