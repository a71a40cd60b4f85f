package main

import (
	"context"
	"os"

	"fbsbot/internal/auth"
	"fbsbot/internal/booking/driver"
	"fbsbot/internal/booking/service"
	"fbsbot/internal/booking/validator"
	"fbsbot/pkg/browser"
	"fbsbot/pkg/config"
	apperrors "fbsbot/pkg/errors"

	"github.com/google/uuid"
)

const ServiceName = "book"

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Load(ServiceName)
	cfg.LogConfiguration()

	log := cfg.Log.With("run_id", uuid.NewString())
	log.Info("Start booking run")

	if err := cfg.RequireAuth(); err != nil {
		log.Error("Configuration incomplete", "error", err, "details", err.Details)
		return apperrors.ExitFailure
	}

	// Debug runs stay headed so the form can be watched.
	session, err := browser.Launch(browser.Options{Headless: !cfg.IsDebug()}, log)
	if err != nil {
		log.Error("Launching browser failed", "error", err)
		return apperrors.ExitFailure
	}
	defer session.Close()

	ctx := context.Background()

	gate := auth.NewGate(
		auth.NewPlaywrightProber(session, cfg, log),
		auth.NewPlaywrightLogin(session, cfg, log),
		log,
	)
	authResult, err := gate.EnsureAuthenticated(ctx)
	if err != nil {
		runErr := apperrors.AsRunError(err)
		log.Error("Authentication failed", "error", runErr, "details", runErr.Details)
		return apperrors.ExitFailure
	}
	log.Info("Authentication completed", "auth_result", authResult)

	bookingService := service.NewBookingService(
		cfg,
		validator.NewBookingValidator(log),
		driver.NewFormDriver(session, cfg, log),
		log,
	)
	if err := bookingService.Run(ctx); err != nil {
		runErr := apperrors.AsRunError(err)
		log.Error("Booking failed", "error", runErr, "details", runErr.Details)
		return apperrors.ExitFailure
	}
	log.Info("Booking completed successfully")

	log.Info("Booking automation run completed")
	return 0
}
