package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skylift/skybook/config"
	"github.com/skylift/skybook/internal/auth"
	"github.com/skylift/skybook/internal/bootstrap"
	"github.com/skylift/skybook/internal/cache"
	"github.com/skylift/skybook/internal/kafka"
	"github.com/skylift/skybook/internal/payments"
	"github.com/skylift/skybook/internal/realtime"
	"github.com/skylift/skybook/internal/repository"
	"github.com/skylift/skybook/internal/service/booking"
	"github.com/skylift/skybook/internal/service/flights"
	"github.com/skylift/skybook/internal/service/notifications"
	"github.com/skylift/skybook/internal/service/reports"
	"github.com/skylift/skybook/internal/service/users"
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

	if cfg.MigrationsDir != "" {
		if err := repository.Migrate(cfg.Database.DSN(), cfg.MigrationsDir); err != nil {
			logger.Fatal(err)
		}
	}

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal(err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightRepo := repository.NewFlightRepository(pool)
	locationRepo := repository.NewLocationRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	reportRepo := repository.NewReportRepository(pool)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	stripeProvider := payments.NewStripeProvider(cfg.Stripe)
	broadcaster := realtime.NewPusherBroadcaster(cfg.Pusher)

	flightService := flights.NewFlightService(flightRepo, locationRepo, redisCache)
	bookingService := booking.NewBookingService(
		bookingRepo,
		flightRepo,
		stripeProvider,
		producer,
		cfg.Kafka.BookingEventsTopic,
		booking.WithBroadcaster(broadcaster),
	)
	userService := users.NewUserService(userRepo, tokens, redisCache)
	notificationService := notifications.NewNotificationService(notificationRepo, time.Duration(cfg.Booking.NotificationRetentionHours)*time.Hour)
	reportService := reports.NewReportService(reportRepo)

	deps := bootstrap.Deps{
		Auth:          auth.NewMiddleware(tokens, userRepo, redisCache),
		Flights:       flightService,
		Bookings:      bookingService,
		Users:         userService,
		Notifications: notificationService,
		Reports:       reportService,
	}

	logger.Info("starting api server", "addr", cfg.HTTP.Address)
	if err := bootstrap.Run(ctx, cfg, deps); err != nil {
		logger.Fatal(err)
	}
}
