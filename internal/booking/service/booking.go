// Package service orchestrates one booking attempt: configuration
// checks, date and time validation, then the form-driving pipeline.
package service

import (
	"context"
	"errors"
	"time"

	"fbsbot/internal/booking/dates"
	"fbsbot/internal/booking/validator"
	"fbsbot/internal/flow"
	"fbsbot/pkg/config"
	apperrors "fbsbot/pkg/errors"
	"fbsbot/pkg/logger"
	"fbsbot/pkg/model"
)

// FormDriver is the external UI capability the orchestrator drives. One
// method per form interaction, so each maps onto a named pipeline step
// and failures report exactly where the sequence broke. Close releases
// the driver's page resources and must be safe on every path.
type FormDriver interface {
	OpenBookingPage(ctx context.Context, url string) error
	OpenDatePicker(ctx context.Context) error
	NextMonth(ctx context.Context) error
	SelectDate(ctx context.Context, calendarTitle string) error
	SearchFacility(ctx context.Context, facility string) error
	WaitFacilityListed(ctx context.Context, facility string) error
	SearchAvailability(ctx context.Context) error
	SelectSlotCell(ctx context.Context) error
	OpenBookingForm(ctx context.Context) error
	SelectStartTime(ctx context.Context, option string) error
	SelectEndTime(ctx context.Context, option string) error
	WaitFormSettled(ctx context.Context) error
	FillPurpose(ctx context.Context, purpose string) error
	AddCoBooker(ctx context.Context, identity string) error
	AcceptTerms(ctx context.Context) error
	Confirm(ctx context.Context) error
	WaitConfirmation(ctx context.Context) error
	Close() error
}

type BookingService interface {
	Run(ctx context.Context) error
}

type bookingService struct {
	cfg       *config.Config
	validator *validator.BookingValidator
	driver    FormDriver
	logger    *logger.Logger
}

func NewBookingService(cfg *config.Config, v *validator.BookingValidator, driver FormDriver, log *logger.Logger) BookingService {
	return &bookingService{
		cfg:       cfg,
		validator: v,
		driver:    driver,
		logger:    log,
	}
}

// Run validates everything first and only then touches the UI; the
// driver is released on every exit path past that point.
func (s *bookingService) Run(ctx context.Context) error {
	if err := s.cfg.RequireBooking(); err != nil {
		return err
	}

	today := dates.Today()
	candidate := s.cfg.BookingDate
	if s.cfg.IsNonInteractive() {
		// Scheduled runs always chase the far edge of the booking
		// window: the furthest date that just became bookable.
		candidate = dates.FormatStored(today.AddDate(0, 0, dates.WindowDays))
		s.logger.Info("Non-interactive run, booking furthest allowed date", "booking_date", candidate)
	}

	if result := s.validator.ValidateDate(candidate, today); !result.IsValid {
		s.logger.Error("Date validation failed", "validation_message", result.Message)
		return apperrors.Validation(result.Message)
	}
	s.logger.Info("Date validation passed", "booking_date", candidate)

	if result := s.validator.ValidateTimes(s.cfg.BookingTimeStart, s.cfg.BookingTimeEnd); !result.IsValid {
		s.logger.Error("Time validation failed", "validation_message", result.Message)
		return apperrors.Validation(result.Message)
	}
	s.logger.Info("Time validation passed",
		"booking_time_start", s.cfg.BookingTimeStart,
		"booking_time_end", s.cfg.BookingTimeEnd,
	)

	bookingDate, err := dates.Parse(candidate)
	if err != nil {
		return apperrors.Validation("Wrong booking date format")
	}

	req := &model.BookingRequest{
		Date:      bookingDate,
		StartTime: s.cfg.BookingTimeStart,
		EndTime:   s.cfg.BookingTimeEnd,
		Facility:  s.cfg.BookingFacility,
		Purpose:   s.cfg.BookingPurpose,
		CoBooker:  s.cfg.BookingCoBooker,
		Confirm:   !s.cfg.IsDebug(),
	}
	if err := s.validator.ValidateRequest(req); err != nil {
		return apperrors.Wrap(err, apperrors.CodeValidation, "booking request failed validation")
	}

	startOption, err := dates.SlotOption(bookingDate, req.StartTime)
	if err != nil {
		return apperrors.Validation(err.Error())
	}
	endOption, err := dates.SlotOption(bookingDate, req.EndTime)
	if err != nil {
		return apperrors.Validation(err.Error())
	}

	defer func() {
		if err := s.driver.Close(); err != nil {
			s.logger.Warn("Closing booking driver failed", "error", err)
		}
	}()

	pipeline := flow.NewPipeline("booking", s.logger, s.steps(req, bookingDate, today, startOption, endOption)...)
	if err := pipeline.Run(ctx); err != nil {
		var stepErr *flow.StepError
		if errors.As(err, &stepErr) {
			return apperrors.Booking(stepErr.Step, stepErr.Err)
		}
		return apperrors.Wrap(err, apperrors.CodeBooking, "booking pipeline failed")
	}

	s.logger.Info("Booking process completed",
		"booking_date", dates.FormatStored(bookingDate),
		"facility", req.Facility,
		"confirmed", req.Confirm,
	)
	return nil
}

func (s *bookingService) steps(req *model.BookingRequest, bookingDate, today time.Time, startOption, endOption string) []flow.Step {
	return []flow.Step{
		flow.NewStep("open booking page", func(ctx context.Context) error {
			return s.driver.OpenBookingPage(ctx, s.cfg.BookingPageURL)
		}),
		flow.NewStep("open date picker", func(ctx context.Context) error {
			return s.driver.OpenDatePicker(ctx)
		}),
		flow.NewStep("navigate calendar month", func(ctx context.Context) error {
			for i := 0; i < dates.NextMonthArrowClicks(bookingDate, today); i++ {
				if err := s.driver.NextMonth(ctx); err != nil {
					return err
				}
			}
			return nil
		}),
		flow.NewStep("select date", func(ctx context.Context) error {
			return s.driver.SelectDate(ctx, dates.CalendarTitle(bookingDate))
		}),
		flow.NewStep("search facility", func(ctx context.Context) error {
			return s.driver.SearchFacility(ctx, req.Facility)
		}),
		flow.NewStep("await facility result", func(ctx context.Context) error {
			return s.driver.WaitFacilityListed(ctx, req.Facility)
		}),
		flow.NewStep("search availability", func(ctx context.Context) error {
			return s.driver.SearchAvailability(ctx)
		}),
		flow.NewStep("select slot cell", func(ctx context.Context) error {
			return s.driver.SelectSlotCell(ctx)
		}),
		flow.NewStep("open booking form", func(ctx context.Context) error {
			return s.driver.OpenBookingForm(ctx)
		}),
		flow.NewStep("select start time", func(ctx context.Context) error {
			return s.driver.SelectStartTime(ctx, startOption)
		}),
		flow.NewStep("select end time", func(ctx context.Context) error {
			return s.driver.SelectEndTime(ctx, endOption)
		}),
		flow.NewStep("settle form", func(ctx context.Context) error {
			return s.driver.WaitFormSettled(ctx)
		}),
		flow.NewStep("fill purpose", func(ctx context.Context) error {
			return s.driver.FillPurpose(ctx, req.Purpose)
		}),
		flow.NewStep("add co-booker", func(ctx context.Context) error {
			return s.driver.AddCoBooker(ctx, req.CoBooker)
		}),
		flow.NewStep("accept terms", func(ctx context.Context) error {
			return s.driver.AcceptTerms(ctx)
		}),
		flow.NewStep("confirm booking", func(ctx context.Context) error {
			if !req.Confirm {
				s.logger.Info("Booking confirmation skipped (debug mode)")
				return nil
			}
			s.logger.Info("Confirming booking submission")
			return s.driver.Confirm(ctx)
		}),
		flow.NewStep("await confirmation", func(ctx context.Context) error {
			return s.driver.WaitConfirmation(ctx)
		}),
	}
}
