package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	apperrors "fbsbot/pkg/errors"
	"fbsbot/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	StorageStatePath string `validate:"-"`
	BookingPageURL   string `validate:"omitempty,url"`
	MicrosoftEmail   string `validate:"omitempty,email"`
	MicrosoftPwd     string `validate:"-"`

	NonInteractive   string `validate:"omitempty,boolean"`
	BookingDate      string `validate:"-"`
	BookingTimeStart string `validate:"-"`
	BookingTimeEnd   string `validate:"-"`
	BookingFacility  string `validate:"-"`
	BookingPurpose   string `validate:"-"`
	BookingCoBooker  string `validate:"-"`
	BookingDebug     string `validate:"omitempty,boolean"`

	AuthProbeTimeout    time.Duration `validate:"gt=0"`
	AuthRedirectTimeout time.Duration `validate:"gt=0"`
	LoginSettleWait     time.Duration `validate:"gt=0"`
	FormSettleWait      time.Duration `validate:"gt=0"`

	LogLevel string `validate:"omitempty,oneof=debug info warn error"`
	LogDir   string `validate:"-"`

	Log *logger.Logger `validate:"-"`
}

func Load(serviceName string) *Config {
	loadEnvFile()

	cfg := &Config{
		StorageStatePath: getEnvStr(EnvStorageStatePath, ""),
		BookingPageURL:   getEnvStr(EnvBookingPageURL, ""),
		MicrosoftEmail:   getEnvStr(EnvMicrosoftEmail, ""),
		MicrosoftPwd:     getEnvStr(EnvMicrosoftPwd, ""),

		NonInteractive:   getEnvStr(EnvNonInteractive, ""),
		BookingDate:      getEnvStr(EnvBookingDate, ""),
		BookingTimeStart: getEnvStr(EnvBookingTimeStart, ""),
		BookingTimeEnd:   getEnvStr(EnvBookingTimeEnd, ""),
		BookingFacility:  getEnvStr(EnvBookingFacility, ""),
		BookingPurpose:   getEnvStr(EnvBookingPurpose, ""),
		BookingCoBooker:  getEnvStr(EnvBookingCoBooker, ""),
		BookingDebug:     getEnvStr(EnvBookingDebug, ""),

		AuthProbeTimeout:    getEnvDuration(EnvAuthProbeTimeout, DefaultAuthProbeTimeout),
		AuthRedirectTimeout: getEnvDuration(EnvAuthRedirectTimeout, DefaultAuthRedirectTimeout),
		LoginSettleWait:     getEnvDuration(EnvLoginSettleWait, DefaultLoginSettleWait),
		FormSettleWait:      getEnvDuration(EnvFormSettleWait, DefaultFormSettleWait),

		LogLevel: getEnvStr(EnvLogLevel, DefaultLogLevel),
		LogDir:   getEnvStr(EnvLogDir, DefaultLogDir),
	}

	cfg.Log = logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  logger.JSON,
		Service: serviceName,
		LogDir:  cfg.LogDir,
	})

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	return cfg
}

// loadEnvFile merges the .env file into the process environment without
// overriding values already set. A missing file is not an error.
func loadEnvFile() {
	path := os.Getenv(EnvEnvFile)
	if path == "" {
		path = DefaultEnvFile
	}
	_ = godotenv.Load(path)
}

// Validate checks the format of every value that is present. Presence of
// the auth and booking keys is checked per operation by RequireAuth and
// RequireBooking, so that a rolldate run does not demand credentials.
func (cfg *Config) Validate() error {
	var problems []string

	if err := validator.New().Struct(cfg); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				problems = append(problems, translateFieldError(fe))
			}
		} else {
			return err
		}
	}

	if len(problems) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, p := range problems {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, p)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func translateFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "url":
		return fmt.Sprintf("%s must be a valid URL, got: %v", fe.Field(), fe.Value())
	case "email":
		return fmt.Sprintf("%s must be a valid email address, got: %v", fe.Field(), fe.Value())
	case "boolean":
		return fmt.Sprintf("%s must be true or false, got: %v", fe.Field(), fe.Value())
	case "gt":
		return fmt.Sprintf("%s must be positive, got: %v", fe.Field(), fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s, got: %v", fe.Field(), fe.Param(), fe.Value())
	default:
		return fe.Error()
	}
}

// RequireAuth reports every missing authentication key in a single error.
func (cfg *Config) RequireAuth() *apperrors.RunError {
	return cfg.require(AuthKeys, map[string]string{
		EnvStorageStatePath: cfg.StorageStatePath,
		EnvBookingPageURL:   cfg.BookingPageURL,
		EnvMicrosoftEmail:   cfg.MicrosoftEmail,
		EnvMicrosoftPwd:     cfg.MicrosoftPwd,
	})
}

// RequireBooking reports every missing booking key in a single error.
func (cfg *Config) RequireBooking() *apperrors.RunError {
	return cfg.require(BookingKeys, map[string]string{
		EnvNonInteractive:   cfg.NonInteractive,
		EnvBookingDate:      cfg.BookingDate,
		EnvBookingTimeStart: cfg.BookingTimeStart,
		EnvBookingTimeEnd:   cfg.BookingTimeEnd,
		EnvBookingFacility:  cfg.BookingFacility,
		EnvBookingPurpose:   cfg.BookingPurpose,
		EnvBookingCoBooker:  cfg.BookingCoBooker,
		EnvBookingDebug:     cfg.BookingDebug,
	})
}

func (cfg *Config) require(keys []string, values map[string]string) *apperrors.RunError {
	var missing []string
	for _, key := range keys {
		if values[key] == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return apperrors.Configuration(
		fmt.Sprintf("Missing required environment variables: %s", strings.Join(missing, ", ")),
		missing,
	)
}

// IsNonInteractive reports whether this run is a scheduled automation run;
// those runs ignore BOOKING_DATE and book the furthest allowed date.
func (cfg *Config) IsNonInteractive() bool {
	return strings.EqualFold(cfg.NonInteractive, "true")
}

// IsDebug reports whether the final confirmation click is suppressed.
func (cfg *Config) IsDebug() bool {
	return strings.EqualFold(cfg.BookingDebug, "true")
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"storage_state_path", cfg.StorageStatePath,
		"booking_page_url", cfg.BookingPageURL,
		"microsoft_email", redactEmail(cfg.MicrosoftEmail),
		"microsoft_pwd_set", cfg.MicrosoftPwd != "",
		"non_interactive", cfg.NonInteractive,
		"booking_date", cfg.BookingDate,
		"booking_time_start", cfg.BookingTimeStart,
		"booking_time_end", cfg.BookingTimeEnd,
		"booking_facility", cfg.BookingFacility,
		"booking_purpose", cfg.BookingPurpose,
		"booking_cobooker", cfg.BookingCoBooker,
		"booking_debug", cfg.BookingDebug,
		"auth_probe_timeout", cfg.AuthProbeTimeout,
		"auth_redirect_timeout", cfg.AuthRedirectTimeout,
		"login_settle_wait", cfg.LoginSettleWait,
		"form_settle_wait", cfg.FormSettleWait,
		"log_level", cfg.LogLevel,
	)
}

func redactEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 1 {
		return email
	}
	return email[:1] + "***" + email[at:]
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
