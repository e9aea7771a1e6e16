package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tienda/internal/config"
	"tienda/internal/database"
	"tienda/internal/docs"
	"tienda/internal/handlers"
	"tienda/internal/middleware"
	"tienda/internal/repositories"
	"tienda/internal/services"
	"tienda/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const apiVersion = "1.0.0"

// App owns the HTTP server and every resource it depends on.
type App struct {
	Fiber  *fiber.App
	db     *gorm.DB
	mq     *rabbitmq.Client
	logger *zap.Logger
}

// NewApp wires configuration into a ready to listen application.
func NewApp(cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{logger: logger}

	// --- Store ---
	var productRepo repositories.ProductRepository
	if cfg.Database.Driver == "memory" {
		productRepo = repositories.NewMemoryProductRepository()
		logger.Warn("using in-memory product store, data is lost on restart")
	} else {
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, err
		}
		a.db = db
		productRepo = repositories.NewGORMProductRepository(db)
		logger.Info("database connected", zap.String("driver", cfg.Database.Driver))
	}

	// --- Events ---
	var publisher services.EventPublisher
	if cfg.RabbitMQ.Enabled() {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Queue: cfg.RabbitMQ.Queue}, logger)
		if err != nil {
			a.closeStore()
			return nil, err
		}
		a.mq = mq
		publisher = mq

		if cfg.RabbitMQ.Consume {
			if err := mq.ConsumeProductEvents(rabbitmq.LoggingHandler(logger)); err != nil {
				a.closeResources()
				return nil, err
			}
			logger.Info("consuming product events", zap.String("queue", cfg.RabbitMQ.Queue))
		}
	}

	productService := services.NewProductService(productRepo, publisher, logger)
	productHandler := handlers.NewProductHandler(productService, logger)

	// --- HTTP ---
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: middleware.ErrorHandler(logger),
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	if cfg.Log.AccessLog {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORS.AllowOrigins}))

	api := app.Group("/api")
	productHandler.RegisterRoutes(api)

	app.Get("/health", a.handleHealth)

	if cfg.Docs.Enabled {
		docs.NewHandler(docs.NewSpec(cfg.App.Name, apiVersion)).RegisterRoutes(app)
	}

	a.Fiber = app
	return a, nil
}

func (a *App) handleHealth(c *fiber.Ctx) error {
	status := fiber.StatusOK
	body := fiber.Map{
		"status":   "healthy",
		"time":     time.Now().Format(time.RFC3339),
		"database": "memory",
	}

	if a.db != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := database.Ping(ctx, a.db); err != nil {
			a.logger.Warn("health check failed", zap.Error(err))
			status = fiber.StatusServiceUnavailable
			body["status"] = "unhealthy"
			body["database"] = "unreachable"
		} else {
			body["database"] = "connected"
		}
	}
	if a.mq != nil {
		body["rabbitmq"] = "connected"
	}

	return c.Status(status).JSON(body)
}

// Shutdown stops accepting requests and releases the broker and the store.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if a.Fiber != nil {
		if err := a.Fiber.ShutdownWithContext(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shut down server: %w", err))
		}
	}
	if err := a.closeResources(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *App) closeResources() error {
	var errs []error
	if a.mq != nil {
		if err := a.mq.Close(); err != nil {
			errs = append(errs, err)
		}
		a.mq = nil
	}
	if err := a.closeStore(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *App) closeStore() error {
	if a.db == nil {
		return nil
	}
	err := database.Close(a.db)
	a.db = nil
	if err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
