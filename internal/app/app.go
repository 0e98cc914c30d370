package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"eventhire_backend/database"
	"eventhire_backend/internal/config"
	"eventhire_backend/internal/events"
	"eventhire_backend/internal/handlers"
	"eventhire_backend/internal/logger"
	"eventhire_backend/internal/metrics"
	"eventhire_backend/internal/middleware"
	"eventhire_backend/internal/repositories"
	"eventhire_backend/internal/routes"
	"eventhire_backend/internal/services"
	"eventhire_backend/internal/session"
	"eventhire_backend/internal/validator"
	"eventhire_backend/internal/workers"
	"eventhire_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	apperrors.SetDebug(cfg.IsDevelopment())

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Open(cfg, metrics.RecordDBQuery)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close(gormDB)

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(gormDB); err != nil {
			logger.Fatal("Failed to migrate database", "error", err)
		}
		logger.Info("Database schema migrated")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Хранилище сессий
	sessions, purger, closeSessions, err := initializeSessionStore(ctx, cfg, gormDB)
	if err != nil {
		logger.Fatal("Failed to initialize session store", "error", err)
	}
	defer closeSessions()

	// 2. Фоновые воркеры
	publisher := initializePublisher(cfg)
	defer publisher.Close()

	outboxWorker := workers.NewOutboxWorker(gormDB, repositories.NewOutboxRepository(), publisher).
		WithInterval(cfg.OutboxPollInterval()).
		WithBatchSize(cfg.Outbox.BatchSize).
		WithMaxRetries(cfg.Outbox.MaxRetries)
	outboxWorker.Start(ctx)

	var sessionWorker *workers.SessionWorker
	if purger != nil {
		sessionWorker = workers.NewSessionWorker(purger, time.Hour)
		sessionWorker.Start(ctx)
	}

	// 3. HTTP сервер
	ginRouter := SetupRouter(cfg, gormDB, sessions)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:              address,
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	outboxWorker.Wait()
	if sessionWorker != nil {
		sessionWorker.Wait()
	}
	logger.Info("Server stopped")
}

// SetupRouter собирает сервисы, обработчики и маршруты поверх готовой БД
// и хранилища сессий.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, sessions session.Store) *gin.Engine {
	// 1. Инициализируем сервисы
	serviceContainer := services.NewServiceContainer(sessions, cfg.Session.Secret)

	// 2. Инициализируем хэндлеры
	requireAuth := middleware.SessionAuthMiddleware(serviceContainer.AuthService, cfg.Session.CookieName)
	appHandlers := handlers.NewAppHandlers(serviceContainer, validator.New(), requireAuth, handlers.CookieConfig{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.CookieSecure,
	})

	// 3. Инициализируем Gin
	ginRouter := initializeGinRouter(cfg, gormDB)

	// 4. Регистрация маршрутов
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}

// initializeSessionStore возвращает хранилище, очиститель просроченных сессий
// (только для БД, в redis срок жизни задает TTL ключа) и функцию закрытия.
func initializeSessionStore(ctx context.Context, cfg *config.Config, db *gorm.DB) (session.Store, workers.SessionPurger, func(), error) {
	switch cfg.Session.Store {
	case "redis":
		client := session.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, nil, fmt.Errorf("redis unavailable at %s: %w", cfg.Redis.Addr, err)
		}
		logger.Info("Session store initialized", "type", "redis", "addr", cfg.Redis.Addr)
		return session.NewRedisStore(client, cfg.SessionTTL()), nil, closeRedis(client), nil
	default:
		store := session.NewDBStore(db, repositories.NewSessionRepository(), cfg.SessionTTL())
		logger.Info("Session store initialized", "type", "db")
		return store, store, func() {}, nil
	}
}

func closeRedis(client *redis.Client) func() {
	return func() {
		if err := client.Close(); err != nil {
			logger.Warn("Failed to close redis client", "error", err)
		}
	}
}

func initializePublisher(cfg *config.Config) events.Publisher {
	if cfg.MQ.URL == "" {
		logger.Warn("mq.url is not set, outbox events will only be logged")
		return events.NewLogPublisher()
	}

	publisher, err := events.NewAMQPPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
	if err != nil {
		logger.Fatal("Failed to connect to message broker", "error", err)
	}
	logger.Info("Event publisher initialized", "type", "amqp", "exchange", cfg.MQ.Exchange)
	return publisher
}
