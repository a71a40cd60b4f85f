// Command rolldate advances BOOKING_DATE in the .env date store by one
// day, skipping Sundays. Run as a separate maintenance step after each
// successful booking run.
package main

import (
	"os"

	"fbsbot/internal/booking/dates"
	"fbsbot/pkg/config"
	apperrors "fbsbot/pkg/errors"
	"fbsbot/pkg/logger"

	"github.com/joho/godotenv"
)

const ServiceName = "rolldate"

func main() {
	os.Exit(run())
}

func run() int {
	log := logger.New(logger.Config{
		Level:   os.Getenv(config.EnvLogLevel),
		Format:  logger.JSON,
		Service: ServiceName,
		LogDir:  config.DefaultLogDir,
	})

	envPath := os.Getenv(config.EnvEnvFile)
	if envPath == "" {
		envPath = config.DefaultEnvFile
	}

	env, err := godotenv.Read(envPath)
	if err != nil {
		runErr := apperrors.DateStore("could not read date store", err)
		log.Error("Date store unreadable", "error", runErr, "path", envPath)
		return runErr.ExitCode
	}

	raw, ok := env[config.EnvBookingDate]
	if !ok || raw == "" {
		runErr := apperrors.DateStore("BOOKING_DATE not found in date store", nil)
		log.Error("Date store incomplete", "error", runErr, "path", envPath)
		return runErr.ExitCode
	}

	stored, err := dates.Parse(raw)
	if err != nil {
		runErr := apperrors.DateStore("stored booking date is malformed", err)
		log.Error("Date store malformed", "error", runErr, "booking_date", raw)
		return runErr.ExitCode
	}

	next := dates.Advance(stored)
	env[config.EnvBookingDate] = dates.FormatStored(next)

	if err := godotenv.Write(env, envPath); err != nil {
		runErr := apperrors.DateStore("could not write date store", err)
		log.Error("Date store unwritable", "error", runErr, "path", envPath)
		return runErr.ExitCode
	}

	log.Info("Updated BOOKING_DATE", "new_date", dates.FormatStored(next))
	return 0
}
