package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fbsbot/internal/booking/dates"
	"fbsbot/pkg/logger"
	"fbsbot/pkg/model"

	"github.com/go-playground/validator/v10"
)

// Result is the outcome of a single booking rule check. Callers branch
// on IsValid; Message is the human-readable reason either way.
type Result struct {
	IsValid bool   `json:"is_valid"`
	Message string `json:"message"`
}

const (
	msgWrongDateFormat = "Wrong booking date format"
	msgDateBeforeToday = "Booking date cannot be before today's date"
	msgDateOutOfWindow = "Booking date must be within 14 days of today's date"
	msgDateValid       = "Booking date is valid"

	msgBadStartSlot  = "Start time must be between 08:30 and 22:00 in 30-minute intervals"
	msgBadEndSlot    = "End time must be between 09:00 and 22:30 in 30-minute intervals"
	msgStartNotFirst = "Booking start time must be before end time"
	msgTooLong       = "Booking duration cannot exceed 4 hours"
	msgTimesValid    = "Booking times are valid"
)

// Operating-hours slot bounds in minutes since midnight.
const (
	earliestStart = 8*60 + 30  // 08:30
	latestStart   = 22 * 60    // 22:00
	earliestEnd   = 9 * 60     // 09:00
	latestEnd     = 22*60 + 30 // 22:30

	maxDurationMinutes = 4 * 60
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()

	if err := v.RegisterValidation("start_slot", validateStartSlot); err != nil {
		log.Fatal("Failed to register 'start_slot' validator", "error", err)
	}
	if err := v.RegisterValidation("end_slot", validateEndSlot); err != nil {
		log.Fatal("Failed to register 'end_slot' validator", "error", err)
	}

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

func validateStartSlot(fl validator.FieldLevel) bool {
	return isSlot(fl.Field().String(), earliestStart, latestStart)
}

func validateEndSlot(fl validator.FieldLevel) bool {
	return isSlot(fl.Field().String(), earliestEnd, latestEnd)
}

// isSlot reports whether the HH:MM token is a half-hour boundary inside
// [earliest, latest] minutes since midnight.
func isSlot(clock string, earliest, latest int) bool {
	minutes, ok := minutesOfDay(clock)
	if !ok {
		return false
	}
	return minutes%30 == 0 && minutes >= earliest && minutes <= latest
}

func minutesOfDay(clock string) (int, bool) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// ValidateDate decides whether candidate falls inside the forward-looking
// booking window [today, today+14], compared at Singapore day granularity.
func (v *BookingValidator) ValidateDate(candidate string, today time.Time) Result {
	parsed, err := dates.Parse(candidate)
	if err != nil {
		v.logger.Debug("Invalid booking date format", "booking_date", candidate)
		return Result{IsValid: false, Message: msgWrongDateFormat}
	}

	dayDiff := dates.DaysUntil(parsed, dates.Midnight(today))
	v.logger.Debug("Date difference calculated", "day_diff", dayDiff)

	if dayDiff < 0 {
		return Result{IsValid: false, Message: msgDateBeforeToday}
	}
	if dayDiff > dates.WindowDays {
		return Result{IsValid: false, Message: msgDateOutOfWindow}
	}
	return Result{IsValid: true, Message: msgDateValid}
}

// ValidateTimes checks that both HH:MM tokens are operating-hour slots,
// the start precedes the end, and the span is at most four hours.
func (v *BookingValidator) ValidateTimes(start, end string) Result {
	if !isSlot(start, earliestStart, latestStart) {
		v.logger.Debug("Invalid start time format", "booking_time_start", start)
		return Result{IsValid: false, Message: msgBadStartSlot}
	}
	if !isSlot(end, earliestEnd, latestEnd) {
		v.logger.Debug("Invalid end time format", "booking_time_end", end)
		return Result{IsValid: false, Message: msgBadEndSlot}
	}

	startMinutes, _ := minutesOfDay(start)
	endMinutes, _ := minutesOfDay(end)

	if startMinutes >= endMinutes {
		return Result{IsValid: false, Message: msgStartNotFirst}
	}
	if endMinutes-startMinutes > maxDurationMinutes {
		return Result{IsValid: false, Message: msgTooLong}
	}
	return Result{IsValid: true, Message: msgTimesValid}
}

// ValidateRequest runs the struct-level rules on a resolved request.
func (v *BookingValidator) ValidateRequest(req *model.BookingRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		case "start_slot":
			message = msgBadStartSlot
		case "end_slot":
			message = msgBadEndSlot
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
