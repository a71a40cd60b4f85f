package validator

import (
	"strings"
	"testing"
	"time"

	"fbsbot/internal/booking/dates"
	"fbsbot/pkg/logger"
	"fbsbot/pkg/model"
)

func newTestValidator() *BookingValidator {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	return NewBookingValidator(log)
}

func TestValidateDate(t *testing.T) {
	v := newTestValidator()
	today := time.Date(2026, 9, 1, 0, 0, 0, 0, dates.Location())

	tests := []struct {
		name        string
		candidate   string
		wantValid   bool
		wantMessage string
	}{
		{
			name:      "today is valid",
			candidate: "2026-09-01",
			wantValid: true,
		},
		{
			name:      "window edge day 14 is valid",
			candidate: "2026-09-15",
			wantValid: true,
		},
		{
			name:        "day 15 is out of window",
			candidate:   "2026-09-16",
			wantValid:   false,
			wantMessage: "Booking date must be within 14 days of today's date",
		},
		{
			name:        "yesterday is in the past",
			candidate:   "2026-08-31",
			wantValid:   false,
			wantMessage: "Booking date cannot be before today's date",
		},
		{
			name:        "far past",
			candidate:   "2020-01-01",
			wantValid:   false,
			wantMessage: "Booking date cannot be before today's date",
		},
		{
			name:        "unparseable",
			candidate:   "not-a-date",
			wantValid:   false,
			wantMessage: "Wrong booking date format",
		},
		{
			name:        "empty",
			candidate:   "",
			wantValid:   false,
			wantMessage: "Wrong booking date format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.ValidateDate(tt.candidate, today)
			if got.IsValid != tt.wantValid {
				t.Fatalf("expected valid=%v, got %v (message: %s)", tt.wantValid, got.IsValid, got.Message)
			}
			if tt.wantMessage != "" && got.Message != tt.wantMessage {
				t.Errorf("expected message %q, got %q", tt.wantMessage, got.Message)
			}
		})
	}
}

func TestValidateDateIgnoresTimeOfDay(t *testing.T) {
	v := newTestValidator()

	// A late-evening "today" must not push a window-edge date over the
	// limit: comparison happens at day granularity after normalization.
	today := time.Date(2026, 9, 1, 23, 45, 0, 0, dates.Location())
	got := v.ValidateDate("2026-09-15", today)
	if !got.IsValid {
		t.Errorf("expected window edge to stay valid regardless of time of day, got: %s", got.Message)
	}
}

func TestValidateTimes(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name        string
		start       string
		end         string
		wantValid   bool
		wantMessage string
	}{
		{
			name:      "ordinary two hour booking",
			start:     "09:00",
			end:       "11:00",
			wantValid: true,
		},
		{
			name:      "earliest start slot",
			start:     "08:30",
			end:       "09:00",
			wantValid: true,
		},
		{
			name:      "latest pair",
			start:     "22:00",
			end:       "22:30",
			wantValid: true,
		},
		{
			name:      "four hours exactly",
			start:     "08:30",
			end:       "12:30",
			wantValid: true,
		},
		{
			name:        "four and a half hours",
			start:       "08:30",
			end:         "13:00",
			wantValid:   false,
			wantMessage: "Booking duration cannot exceed 4 hours",
		},
		{
			name:        "full day rejected by duration",
			start:       "08:30",
			end:         "22:30",
			wantValid:   false,
			wantMessage: "Booking duration cannot exceed 4 hours",
		},
		{
			name:        "start before opening",
			start:       "08:00",
			end:         "10:00",
			wantValid:   false,
			wantMessage: "Start time must be between 08:30 and 22:00 in 30-minute intervals",
		},
		{
			name:        "start after last slot",
			start:       "22:30",
			end:         "23:00",
			wantValid:   false,
			wantMessage: "Start time must be between 08:30 and 22:00 in 30-minute intervals",
		},
		{
			name:        "start off the half hour",
			start:       "09:15",
			end:         "11:00",
			wantValid:   false,
			wantMessage: "Start time must be between 08:30 and 22:00 in 30-minute intervals",
		},
		{
			name:        "end before first end slot",
			start:       "08:30",
			end:         "08:45",
			wantValid:   false,
			wantMessage: "End time must be between 09:00 and 22:30 in 30-minute intervals",
		},
		{
			name:        "end past closing",
			start:       "20:00",
			end:         "23:00",
			wantValid:   false,
			wantMessage: "End time must be between 09:00 and 22:30 in 30-minute intervals",
		},
		{
			name:        "start equals end",
			start:       "10:00",
			end:         "10:00",
			wantValid:   false,
			wantMessage: "Booking start time must be before end time",
		},
		{
			name:        "start after end",
			start:       "12:00",
			end:         "10:00",
			wantValid:   false,
			wantMessage: "Booking start time must be before end time",
		},
		{
			name:        "garbage start",
			start:       "morning",
			end:         "10:00",
			wantValid:   false,
			wantMessage: "Start time must be between 08:30 and 22:00 in 30-minute intervals",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.ValidateTimes(tt.start, tt.end)
			if got.IsValid != tt.wantValid {
				t.Fatalf("expected valid=%v, got %v (message: %s)", tt.wantValid, got.IsValid, got.Message)
			}
			if tt.wantMessage != "" && got.Message != tt.wantMessage {
				t.Errorf("expected message %q, got %q", tt.wantMessage, got.Message)
			}
		})
	}
}

func TestValidateRequest(t *testing.T) {
	v := newTestValidator()

	valid := func() *model.BookingRequest {
		return &model.BookingRequest{
			Date:      time.Date(2026, 9, 5, 0, 0, 0, 0, dates.Location()),
			StartTime: "09:00",
			EndTime:   "11:00",
			Facility:  "Study Room 2.1",
			Purpose:   "Project meeting",
			CoBooker:  "friend@example.edu",
		}
	}

	if err := v.ValidateRequest(valid()); err != nil {
		t.Fatalf("expected valid request, got: %v", err)
	}

	t.Run("missing facility", func(t *testing.T) {
		req := valid()
		req.Facility = ""
		err := v.ValidateRequest(req)
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "Facility is required") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("off-slot start time", func(t *testing.T) {
		req := valid()
		req.StartTime = "09:10"
		err := v.ValidateRequest(req)
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "30-minute intervals") {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
