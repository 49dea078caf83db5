package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/planning-backend/config"
	"github.com/oksasatya/planning-backend/internal/application"
	"github.com/oksasatya/planning-backend/internal/container"
	"github.com/oksasatya/planning-backend/pkg/helpers"
)

// changecontrol_worker applies the bumps queued by the API so the singleton
// record sees a single writer per queue consumer.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-changecontrol-worker", cfg.Env)

	if cfg.RabbitMQURL == "" || cfg.RabbitMQChangeQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

	ctx := context.Background()
	store, err := container.OpenStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer func() { _ = store.Close(context.Background()) }()

	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}
	tracker := application.NewChangeControl(store.ChangeControl(), rdb, cfg.ChangeControlCacheTTL, nil, "", logger)

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQChangeQueue, 1)
	if err != nil {
		log.Fatalf("amqp consumer: %v", err)
	}
	defer consumer.Close()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range consumer.Deliveries {
			c, cancel := context.WithTimeout(ctx, 10*time.Second)
			err := tracker.HandleBumpMessage(c, msg.Body)
			cancel()
			switch {
			case err == nil:
				_ = msg.Ack(false)
			case errors.Is(err, application.ErrBadBumpMessage):
				logger.WithError(err).Warn("dropping changecontrol message")
				_ = msg.Nack(false, false)
			default:
				logger.WithError(err).Error("changecontrol bump failed; requeueing")
				_ = msg.Nack(false, true)
			}
		}
		close(done)
	}()

	logger.Infof("changecontrol worker listening on queue=%s", cfg.RabbitMQChangeQueue)
	<-stop
	logger.Info("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
