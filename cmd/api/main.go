package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/la-masion/booking-api/internal/api/router"
	"github.com/la-masion/booking-api/internal/booking"
	"github.com/la-masion/booking-api/internal/config"
	"github.com/la-masion/booking-api/internal/drafts"
	"github.com/la-masion/booking-api/internal/notify"
	"github.com/la-masion/booking-api/internal/observability/metrics"
	"github.com/la-masion/booking-api/internal/square"
	"github.com/la-masion/booking-api/pkg/logging"
)

func main() {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting booking api",
		"env", cfg.Env,
		"port", cfg.Port,
		"square_environment", cfg.SquareEnvironment,
		"alerts_enabled", cfg.BookingAlertsEnabled,
	)

	squareClient := square.NewClient(cfg.SquareAccessToken, cfg.SquareEnvironment, logger)

	var store booking.DraftStore
	if ds := drafts.NewStore(drafts.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		TLS:      cfg.RedisTLS,
		TTL:      cfg.DraftTTL,
	}, logger); ds != nil {
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := ds.Ping(pingCtx); err != nil {
			logger.Warn("redis unreachable, continuing without server-side drafts", "error", err)
		} else {
			store = ds
		}
		cancel()
	} else {
		logger.Info("no REDIS_ADDR configured, server-side drafts disabled")
	}

	var emailSender notify.EmailSender
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.BookingAlertEmailFrom,
	}, logger); sg != nil {
		emailSender = sg
	}
	alerts := notify.NewAlertService(emailSender, cfg.BookingAlertEmailTo, cfg.BookingAlertEmailFrom, cfg.BookingAlertsEnabled, logger)

	bookingMetrics := metrics.NewBookingMetrics(nil)

	svc := booking.NewService(squareClient, store, alerts, bookingMetrics, booking.Options{
		LocationID:         cfg.SquareLocationID,
		TeamMemberID:       cfg.SquareDefaultTeamMember,
		VariationMap:       cfg.VariationMap(),
		Currency:           cfg.SquareCurrency,
		ForcedDepositCents: cfg.ForcedDepositCents(),
		DefaultCountryCode: cfg.DefaultCountryCode,
		PublicBaseURL:      cfg.PublicBaseURL,
	}, logger)

	handler := booking.NewHandler(svc, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.New(cfg, handler, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}
