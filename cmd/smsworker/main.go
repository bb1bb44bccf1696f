package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/otp-auth-api/internal/application/notify"
	"github.com/otp-auth-api/internal/config"
	"github.com/otp-auth-api/internal/infrastructure/redisstore"
	"github.com/otp-auth-api/internal/infrastructure/sms"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	redisClient, err := redisstore.NewClient(cfg)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	queue := redisstore.NewSMSQueue(redisClient, cfg.SMSQueueKey)

	sender, err := sms.NewSender(cfg)
	if err != nil {
		log.Fatalf("sms sender: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	worker := notify.NewWorker(queue, sender)
	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("worker: %v", err)
	}
	log.Println("Worker stopped")
}
