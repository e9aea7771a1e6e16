package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"tienda/internal/config"
	"tienda/internal/logger"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to an optional config file (yaml, json or toml)")
	flag.Parse()

	// --- Configuration ---
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	// --- Application ---
	app, err := NewApp(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("failed to initialize application", zap.Error(err))
	}

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("starting server", zap.String("port", cfg.App.Port))
		serverErr <- app.Fiber.Listen(cfg.App.Port)
	}()

	select {
	case <-quit:
		appLogger.Info("shutting down server")
	case err := <-serverErr:
		if err != nil {
			appLogger.Error("server stopped unexpectedly", zap.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := app.Shutdown(ctx); err != nil {
		appLogger.Error("error during shutdown", zap.Error(err))
	}

	appLogger.Info("server gracefully stopped")
}
