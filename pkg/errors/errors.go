package errors

import "fmt"

const (
	CodeConfiguration  = "CONFIGURATION_ERROR"
	CodeValidation     = "VALIDATION_ERROR"
	CodeSessionProbe   = "SESSION_PROBE_FAILED"
	CodeAuthentication = "AUTHENTICATION_FAILED"
	CodeBooking        = "BOOKING_FAILED"
	CodeDateStore      = "DATE_STORE_ERROR"
	CodeInternal       = "INTERNAL_ERROR"
)

// ExitFailure is the process exit code for every unrecoverable run error.
const ExitFailure = 1

type RunError struct {
	Code     string         `json:"code"`
	Message  string         `json:"message"`
	ExitCode int            `json:"-"`
	Details  map[string]any `json:"details,omitempty"`
	Err      error          `json:"-"`
}

func (e *RunError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

func New(code, message string) *RunError {
	return &RunError{
		Code:     code,
		Message:  message,
		ExitCode: ExitFailure,
	}
}

func Wrap(err error, code, message string) *RunError {
	return &RunError{
		Code:     code,
		Message:  message,
		ExitCode: ExitFailure,
		Err:      err,
	}
}

func (e *RunError) WithDetails(details map[string]any) *RunError {
	e.Details = details
	return e
}

func Configuration(message string, missingKeys []string) *RunError {
	return &RunError{
		Code:     CodeConfiguration,
		Message:  message,
		ExitCode: ExitFailure,
		Details: map[string]any{
			"missing_keys": missingKeys,
		},
	}
}

func Validation(message string) *RunError {
	return &RunError{
		Code:     CodeValidation,
		Message:  message,
		ExitCode: ExitFailure,
	}
}

// SessionProbe marks a stored session as unusable. It is the one
// non-fatal code: callers fall back to a full authentication instead
// of aborting the run.
func SessionProbe(message string, err error) *RunError {
	return &RunError{
		Code:     CodeSessionProbe,
		Message:  message,
		ExitCode: 0,
		Err:      err,
	}
}

func Authentication(message string, err error, lastURL, step string) *RunError {
	return &RunError{
		Code:     CodeAuthentication,
		Message:  message,
		ExitCode: ExitFailure,
		Err:      err,
		Details: map[string]any{
			"last_url": lastURL,
			"step":     step,
		},
	}
}

func Booking(step string, err error) *RunError {
	return &RunError{
		Code:     CodeBooking,
		Message:  fmt.Sprintf("booking step %q failed", step),
		ExitCode: ExitFailure,
		Err:      err,
		Details: map[string]any{
			"step": step,
		},
	}
}

func DateStore(message string, err error) *RunError {
	return &RunError{
		Code:     CodeDateStore,
		Message:  message,
		ExitCode: ExitFailure,
		Err:      err,
	}
}

func Internal(message string, err error) *RunError {
	return &RunError{
		Code:     CodeInternal,
		Message:  message,
		ExitCode: ExitFailure,
		Err:      err,
	}
}

func IsRunError(err error) bool {
	_, ok := err.(*RunError)
	return ok
}

func AsRunError(err error) *RunError {
	if runErr, ok := err.(*RunError); ok {
		return runErr
	}
	return Internal("An unexpected error occurred", err)
}
