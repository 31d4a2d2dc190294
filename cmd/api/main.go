package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/barberbook/barber-api/internal/config"
	"github.com/barberbook/barber-api/internal/email"
	"github.com/barberbook/barber-api/internal/handler"
	authHandler "github.com/barberbook/barber-api/internal/handler/auth"
	barberHandler "github.com/barberbook/barber-api/internal/handler/barber"
	bookingHandler "github.com/barberbook/barber-api/internal/handler/booking"
	"github.com/barberbook/barber-api/internal/middleware"
	"github.com/barberbook/barber-api/internal/repository/postgres"
	"github.com/barberbook/barber-api/internal/router"
	authService "github.com/barberbook/barber-api/internal/service/auth"
	barberService "github.com/barberbook/barber-api/internal/service/barber"
	bookingService "github.com/barberbook/barber-api/internal/service/booking"
	eventService "github.com/barberbook/barber-api/internal/service/event"
	"github.com/barberbook/barber-api/pkg/auth"
	"github.com/barberbook/barber-api/pkg/logger"
	"github.com/barberbook/barber-api/pkg/metrics"
	"github.com/barberbook/barber-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	barberRepo := postgres.NewBarberRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	hasher := security.NewBcryptHasher(0)

	mailer := email.NewNoop()
	if cfg.SMTP.Enabled {
		mailer = email.NewSMTPService(email.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}

	barberSvc := barberService.NewService(barberRepo)
	eventSvc := eventService.NewService(outboxRepo)
	bookingSvc := bookingService.NewService(bookingRepo, barberSvc, userRepo, eventSvc, mailer, appLogger)
	authSvc := authService.NewService(userRepo, barberSvc, hasher, jwtSvc)

	m := metrics.NewMetrics("barberbook", "api")

	handler.RegisterValidators()
	h := handler.NewHandler(db)
	authH := authHandler.NewHandler(authSvc)
	barberH := barberHandler.NewHandler(barberSvc, bookingSvc, m)
	bookingH := bookingHandler.NewHandler(bookingSvc, m)

	authMiddleware := middleware.NewAuthMiddleware(jwtSvc, barberSvc)

	r := router.NewRouter(authMiddleware, authH, barberH, bookingH, h, router.Config{
		RateLimit:  rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst:  cfg.RateLimit.Burst,
		CORSConfig: middleware.DefaultCORSConfig(),
	})
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
