package config

import (
	"strings"
	"testing"
	"time"

	"fbsbot/pkg/errors"
)

func baseConfig() *Config {
	return &Config{
		StorageStatePath: "/tmp/state.json",
		BookingPageURL:   "https://fbs.example.edu/fbs",
		MicrosoftEmail:   "student@example.edu",
		MicrosoftPwd:     "secret",

		NonInteractive:   "false",
		BookingDate:      "2026-09-05",
		BookingTimeStart: "09:00",
		BookingTimeEnd:   "11:00",
		BookingFacility:  "Study Room 2.1",
		BookingPurpose:   "Project meeting",
		BookingCoBooker:  "friend@example.edu",
		BookingDebug:     "true",

		AuthProbeTimeout:    30 * time.Second,
		AuthRedirectTimeout: 10 * time.Second,
		LoginSettleWait:     5 * time.Second,
		FormSettleWait:      10 * time.Second,

		LogLevel: "info",
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	cfg := baseConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got: %v", err)
	}
}

func TestValidateAggregatesFormatProblems(t *testing.T) {
	cfg := baseConfig()
	cfg.BookingPageURL = "not-a-url"
	cfg.MicrosoftEmail = "not-an-email"
	cfg.NonInteractive = "maybe"
	cfg.AuthProbeTimeout = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"BookingPageURL", "MicrosoftEmail", "NonInteractive", "AuthProbeTimeout"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected aggregated error to mention %s, got: %v", want, err)
		}
	}
}

func TestRequireAuthListsEveryMissingKey(t *testing.T) {
	cfg := baseConfig()
	cfg.MicrosoftEmail = ""
	cfg.MicrosoftPwd = ""

	err := cfg.RequireAuth()
	if err == nil {
		t.Fatal("expected configuration error")
	}
	if err.Code != errors.CodeConfiguration {
		t.Errorf("expected code %s, got %s", errors.CodeConfiguration, err.Code)
	}
	if !strings.Contains(err.Message, EnvMicrosoftEmail) || !strings.Contains(err.Message, EnvMicrosoftPwd) {
		t.Errorf("expected both missing keys in message, got: %s", err.Message)
	}

	missing, ok := err.Details["missing_keys"].([]string)
	if !ok || len(missing) != 2 {
		t.Errorf("expected 2 missing keys in details, got: %v", err.Details["missing_keys"])
	}
}

func TestRequireBooking(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(cfg *Config)
		wantKeys []string
	}{
		{
			name:     "complete",
			mutate:   func(cfg *Config) {},
			wantKeys: nil,
		},
		{
			name:     "missing end time",
			mutate:   func(cfg *Config) { cfg.BookingTimeEnd = "" },
			wantKeys: []string{EnvBookingTimeEnd},
		},
		{
			name: "missing several",
			mutate: func(cfg *Config) {
				cfg.BookingFacility = ""
				cfg.BookingPurpose = ""
				cfg.BookingCoBooker = ""
			},
			wantKeys: []string{EnvBookingFacility, EnvBookingPurpose, EnvBookingCoBooker},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.mutate(cfg)

			err := cfg.RequireBooking()
			if len(tt.wantKeys) == 0 {
				if err != nil {
					t.Fatalf("expected no error, got: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected configuration error")
			}
			for _, key := range tt.wantKeys {
				if !strings.Contains(err.Message, key) {
					t.Errorf("expected message to mention %s, got: %s", key, err.Message)
				}
			}
		})
	}
}

func TestBoolAccessors(t *testing.T) {
	cfg := baseConfig()

	cfg.NonInteractive = "TRUE"
	if !cfg.IsNonInteractive() {
		t.Error("expected TRUE to count as non-interactive")
	}
	cfg.NonInteractive = "false"
	if cfg.IsNonInteractive() {
		t.Error("expected false to count as interactive")
	}

	cfg.BookingDebug = "True"
	if !cfg.IsDebug() {
		t.Error("expected True to enable debug")
	}
}

func TestRedactEmail(t *testing.T) {
	if got := redactEmail("student@example.edu"); got != "s***@example.edu" {
		t.Errorf("unexpected redaction: %s", got)
	}
}
