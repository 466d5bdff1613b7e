package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skylift/skybook/config"
	"github.com/skylift/skybook/internal/email"
	"github.com/skylift/skybook/internal/kafka"
	"github.com/skylift/skybook/internal/repository"
	"github.com/skylift/skybook/internal/service/notifications"
	"github.com/skylift/skybook/pkg/logger"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal(err)
	}
	defer pool.Close()

	notificationRepo := repository.NewNotificationRepository(pool)
	notificationService := notifications.NewNotificationService(notificationRepo, time.Duration(cfg.Booking.NotificationRetentionHours)*time.Hour)

	sender, err := email.NewSender(cfg.SMTP)
	if err != nil {
		logger.Fatal(err)
	}

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.BookingEventsTopic)
	defer consumer.Close()

	go func() {
		err := consumer.Consume(ctx, func(ctx context.Context, event kafka.BookingEvent) error {
			// One attempt per event. A failed confirmation email is logged
			// and the event is not requeued.
			if err := sender.Send(ctx, event); err != nil {
				logger.Error("send booking email failed", "reference", event.Reference, "err", err)
			}
			return nil
		})
		if err != nil {
			logger.Warn("consumer stopped", "err", err)
		}
	}()

	sweep := time.NewTicker(time.Duration(cfg.Worker.CleanupSweepMinutes) * time.Minute)
	defer sweep.Stop()

	logger.Info("worker started", "topic", cfg.Kafka.BookingEventsTopic)
	for {
		select {
		case <-sweep.C:
			deleted, err := notificationService.Cleanup(ctx)
			if err != nil {
				logger.Error("notification cleanup failed", "err", err)
				continue
			}
			if deleted > 0 {
				logger.Info("cleaned up notifications", "deleted", deleted)
			}
		case <-ctx.Done():
			logger.Info("shutting down worker")
			return
		}
	}
}
