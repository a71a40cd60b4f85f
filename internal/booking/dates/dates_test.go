package dates

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "iso date", input: "2026-09-05", wantErr: false},
		{name: "slash date", input: "2026/09/05", wantErr: false},
		{name: "written date", input: "Sep 5, 2026", wantErr: false},
		{name: "padded whitespace", input: "  2026-09-05  ", wantErr: false},
		{name: "garbage", input: "next tuesday", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected parse error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
				t.Errorf("expected midnight normalization, got %v", got)
			}
			if got.Location() != Location() {
				t.Errorf("expected Singapore location, got %v", got.Location())
			}
		})
	}
}

func TestDaysUntil(t *testing.T) {
	today := Midnight(time.Date(2026, 9, 1, 15, 30, 0, 0, Location()))

	tests := []struct {
		name      string
		candidate time.Time
		want      int
	}{
		{name: "same day", candidate: today, want: 0},
		{name: "tomorrow", candidate: today.AddDate(0, 0, 1), want: 1},
		{name: "window edge", candidate: today.AddDate(0, 0, 14), want: 14},
		{name: "past", candidate: today.AddDate(0, 0, -3), want: -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysUntil(Midnight(tt.candidate), today); got != tt.want {
				t.Errorf("expected %d days, got %d", tt.want, got)
			}
		})
	}
}

func TestCalendarTitle(t *testing.T) {
	d := time.Date(2026, 9, 5, 0, 0, 0, 0, Location())
	if got := CalendarTitle(d); got != "05-sep-2026" {
		t.Errorf("expected 05-sep-2026, got %s", got)
	}
}

func TestSlotOption(t *testing.T) {
	day := time.Date(2026, 9, 5, 0, 0, 0, 0, Location())

	tests := []struct {
		name    string
		clock   string
		want    string
		wantErr bool
	}{
		{name: "afternoon", clock: "14:30", want: "9/5/2026 2:30:00 PM"},
		{name: "morning", clock: "08:30", want: "9/5/2026 8:30:00 AM"},
		{name: "noon", clock: "12:00", want: "9/5/2026 12:00:00 PM"},
		{name: "bad clock", clock: "25:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SlotOption(day, tt.clock)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNextMonthArrowClicks(t *testing.T) {
	tests := []struct {
		name    string
		today   time.Time
		booking time.Time
		want    int
	}{
		{
			name:    "same month",
			today:   time.Date(2026, 9, 1, 0, 0, 0, 0, Location()),
			booking: time.Date(2026, 9, 14, 0, 0, 0, 0, Location()),
			want:    0,
		},
		{
			name:    "following month",
			today:   time.Date(2026, 9, 25, 0, 0, 0, 0, Location()),
			booking: time.Date(2026, 10, 5, 0, 0, 0, 0, Location()),
			want:    1,
		},
		{
			// Month-number subtraction reads December to January as
			// -11; the arrow is never clicked. Deliberately preserved.
			name:    "year boundary limitation",
			today:   time.Date(2026, 12, 28, 0, 0, 0, 0, Location()),
			booking: time.Date(2027, 1, 4, 0, 0, 0, 0, Location()),
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextMonthArrowClicks(tt.booking, tt.today); got != tt.want {
				t.Errorf("expected %d clicks, got %d", tt.want, got)
			}
		})
	}
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		name   string
		stored time.Time
		want   time.Time
	}{
		{
			name:   "saturday skips sunday",
			stored: time.Date(2026, 9, 5, 0, 0, 0, 0, Location()), // Saturday
			want:   time.Date(2026, 9, 7, 0, 0, 0, 0, Location()), // Monday
		},
		{
			name:   "weekday advances one day",
			stored: time.Date(2026, 9, 2, 0, 0, 0, 0, Location()), // Wednesday
			want:   time.Date(2026, 9, 3, 0, 0, 0, 0, Location()),
		},
		{
			name:   "sunday input advances to monday",
			stored: time.Date(2026, 9, 6, 0, 0, 0, 0, Location()), // Sunday
			want:   time.Date(2026, 9, 7, 0, 0, 0, 0, Location()),
		},
		{
			name:   "month rollover",
			stored: time.Date(2026, 9, 30, 0, 0, 0, 0, Location()),
			want:   time.Date(2026, 10, 1, 0, 0, 0, 0, Location()),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Advance(tt.stored)
			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			if got.Weekday() == time.Sunday {
				t.Error("advanced date must never be a Sunday")
			}
		})
	}
}
