package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/skylift/skybook/api"
	"github.com/skylift/skybook/config"
	"github.com/skylift/skybook/internal/auth"
	"github.com/skylift/skybook/internal/domain"
	"github.com/skylift/skybook/internal/metrics"
	"github.com/skylift/skybook/internal/service/booking"
	"github.com/skylift/skybook/internal/service/flights"
	"github.com/skylift/skybook/internal/service/notifications"
	"github.com/skylift/skybook/internal/service/reports"
	"github.com/skylift/skybook/internal/service/users"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Deps struct {
	Auth          *auth.Middleware
	Flights       flights.FlightUseCase
	Bookings      booking.BookingUseCase
	Users         users.UserUseCase
	Notifications notifications.NotificationUseCase
	Reports       reports.ReportUseCase
}

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, deps Deps) error {
	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: newRouter(cfg, deps),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newRouter(cfg *config.Config, deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), metrics.Middleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	public := router.Group("/api")
	authed := router.Group("/api")
	authed.Use(deps.Auth.Authenticate)
	admin := router.Group("/api")
	admin.Use(deps.Auth.Authenticate, deps.Auth.RequireRole(domain.RoleAdmin))

	api.NewFlightHandler(deps.Flights).Register(public, admin)
	api.NewBookingHandler(deps.Bookings).Register(public, admin)
	api.NewUserHandler(deps.Users).Register(public, authed, admin)
	api.NewNotificationHandler(deps.Notifications).Register(admin)
	api.NewReportHandler(deps.Reports).Register(admin)

	router.GET("/metrics", metrics.Handler())

	if cfg.HTTP.SwaggerDir != "" {
		router.StaticFS("/swagger", http.Dir(cfg.HTTP.SwaggerDir))
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/openapi.json"),
		)))
	}

	return router
}
