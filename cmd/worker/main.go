package main

import (
	"log"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/nekogravitycat/trainer-booking-backend/internal/config"
	"github.com/nekogravitycat/trainer-booking-backend/internal/logger"
	"github.com/nekogravitycat/trainer-booking-backend/internal/notification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.IsProduction, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zlog.Sync()

	srv := asynq.NewServer(
		cfg.RedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				notification.QueueName: 1,
			},
			Logger: zlog.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeSend, notification.HandleSendTask(notification.NewLogMailer(zlog), zlog))

	zlog.Info("notification worker starting", zap.String("redis", cfg.RedisAddr))
	// Run blocks until SIGTERM or SIGINT.
	if err := srv.Run(mux); err != nil {
		zlog.Fatal("worker stopped", zap.Error(err))
	}
}
