package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"products-api/internal/config"
	"products-api/internal/database"
	"products-api/internal/handlers"
	applogger "products-api/internal/logger"
	"products-api/internal/repositories"
	"products-api/internal/server"
	"products-api/internal/services"
	"products-api/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := applogger.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	app, cleanup, err := newApp(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("failed to build app", zap.Error(err))
	}
	defer cleanup()

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("starting server", zap.String("port", cfg.AppPort))
		if err := app.Listen(cfg.AppPort); err != nil {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("error during Fiber shutdown", zap.Error(err))
	}
	logger.Info("server gracefully stopped")
}

// newApp wires storage, messaging, services and handlers. Storage and broker
// connection failures are logged and the app is still returned, answering
// 500 on storage access until the database comes back. The returned cleanup
// releases every connection.
func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*fiber.App, func(), error) {
	// --- Storage ---
	var (
		db       *gorm.DB
		repo     repositories.ProductRepository
		dbPinger handlers.Pinger
	)
	if cfg.UsesDatabase() {
		var err error
		db, err = database.Open(cfg)
		if err != nil {
			return nil, nil, err
		}
		_ = database.Connect(ctx, db, cfg.DatabaseAutoMigrate, logger)

		if sqlDB, err := db.DB(); err == nil {
			dbPinger = sqlDB
		}
		repo = repositories.NewGORMProductRepository(db)
	} else {
		memRepo := repositories.NewMemoryProductRepository()
		repo, dbPinger = memRepo, memRepo
		logger.Warn("products are kept in memory and lost on restart", zap.String("driver", cfg.DatabaseDriver))
	}

	// --- Product events ---
	consumeCtx, stopConsuming := context.WithCancel(ctx)
	var (
		mqClient  *rabbitmq.Client
		publisher services.EventPublisher
	)
	if cfg.RabbitMQURL != "" {
		var err error
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: cfg.RabbitMQExchange}, logger.Named("rabbitmq"))
		if err != nil {
			logger.Warn("product events disabled", zap.Error(err))
		} else {
			publisher = mqClient
			if cfg.RabbitMQConsume {
				if err := mqClient.ConsumeProductEvents(consumeCtx, rabbitmq.LogProductEvent(logger.Named("events"))); err != nil {
					logger.Warn("failed to start product event consumer", zap.Error(err))
				}
			}
		}
	}

	// --- Services and HTTP ---
	productService := services.NewProductService(repo, publisher)
	app := server.New(server.Options{
		Logger:     logger,
		Products:   productService,
		DB:         dbPinger,
		CORSOrigin: cfg.CORSOrigin,
	})

	cleanup := func() {
		stopConsuming()
		if mqClient != nil {
			if err := mqClient.Close(); err != nil {
				logger.Warn("failed to close RabbitMQ client", zap.Error(err))
			}
		}
		if db != nil {
			if err := database.Close(db); err != nil {
				logger.Warn("failed to close database", zap.Error(err))
			}
		}
	}
	return app, cleanup, nil
}
