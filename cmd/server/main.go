package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/nekogravitycat/trainer-booking-backend/internal/app"
	"github.com/nekogravitycat/trainer-booking-backend/internal/config"
	"github.com/nekogravitycat/trainer-booking-backend/internal/db"
	"github.com/nekogravitycat/trainer-booking-backend/internal/logger"
	"github.com/nekogravitycat/trainer-booking-backend/internal/metrics"
	"github.com/nekogravitycat/trainer-booking-backend/internal/notification"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.IsProduction, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zlog.Sync()

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN, cfg.DBMaxConns)
	if err != nil {
		zlog.Fatal("failed to connect to db", zap.Error(err))
	}
	defer pool.Close()

	// Notifications go through Redis when a worker is deployed.
	var notifier notification.Notifier
	if cfg.Notifier == config.NotifierQueue {
		client := asynq.NewClient(cfg.RedisOpt())
		defer client.Close()
		notifier = notification.NewQueueNotifier(client)
	} else {
		notifier = notification.NewLogNotifier(zlog)
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New("trainer_booking")
	}

	container := app.NewContainer(app.Config{
		IsProduction:  cfg.IsProduction,
		ProdOrigins:   cfg.ProdOrigins,
		DBPool:        pool,
		JWTSecret:     cfg.JWTSecret,
		JWTTTL:        cfg.JWTAccessTokenTTL,
		Log:           zlog,
		DBTimeout:     cfg.DBTimeout,
		NotifyTimeout: cfg.NotifyTimeout,
		Notifier:      notifier,
		Metrics:       m,
		MetricsPath:   cfg.MetricsPath,
	})

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	// Run server in separate goroutine
	go func() {
		zlog.Info("server running", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	zlog.Info("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Warn("server forced to shutdown", zap.Error(err))
	}

	// Let in-flight notifications finish before the queue client closes.
	container.Dispatcher.Wait()

	zlog.Info("server exited gracefully")
}
