package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"launchboard-service/internal/infrastructure/bootstrap"
	"launchboard-service/internal/infrastructure/config"
	"launchboard-service/internal/infrastructure/router"
	"launchboard-service/internal/interface/api"
	"launchboard-service/pkg/logger"
	"launchboard-service/pkg/metrics"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger().Fatal("Failed to load config", "error", err)
	}

	// Create logger
	log := logger.NewLoggerWithLevel(cfg.LogLevel)
	defer log.Sync()
	log.Info("Starting Launchboard Service", "version", cfg.AppVersion)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.NewMetrics("launchboard")

	app, err := bootstrap.New(ctx, cfg, log, m)
	if err != nil {
		log.Fatal("Failed to set up launch data layer", "error", err)
	}

	// A broken favorites blob should not keep the launch list down
	if err := app.Service.Load(ctx); err != nil {
		log.Warn("Starting with empty favorites", "error", err)
	}

	// Warm the launch cache in the background
	go app.Service.RunRefresher(ctx, cfg.LaunchRefreshInterval)

	launchHandler := api.NewLaunchHandler(app.Service, log)
	healthHandler := &api.HealthHandler{
		Storage: app.Storage,
		Service: app.Service,
		Version: cfg.AppVersion,
		Logger:  log,
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(launchHandler, healthHandler, log, router.Options{CORSOrigins: cfg.CORSOrigins}),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // stops the refresher

	if err := app.Close(shutdownCtx); err != nil {
		log.Error("Favorites storage close error", "error", err)
	}

	log.Info("Launchboard Service stopped")
}
