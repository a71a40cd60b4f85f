package config

const (
	EnvStorageStatePath = "STORAGESTATE_FP"
	EnvBookingPageURL   = "BOOKING_PAGE_URL"
	EnvMicrosoftEmail   = "MSFT_EMAIL"
	EnvMicrosoftPwd     = "MSFT_PWD"

	EnvNonInteractive   = "IS_GITHUB_ACTION"
	EnvBookingDate      = "BOOKING_DATE"
	EnvBookingTimeStart = "BOOKING_TIME_START"
	EnvBookingTimeEnd   = "BOOKING_TIME_END"
	EnvBookingFacility  = "BOOKING_FACILITY"
	EnvBookingPurpose   = "BOOKING_PURPOSE"
	EnvBookingCoBooker  = "BOOKING_COBOOKER"
	EnvBookingDebug     = "IS_BOOKING_DEBUG"

	EnvLogLevel = "LOG_LEVEL"
	EnvLogDir   = "LOG_DIR"
	EnvEnvFile  = "ENV_FILE"

	EnvAuthProbeTimeout    = "AUTH_PROBE_TIMEOUT"
	EnvAuthRedirectTimeout = "AUTH_REDIRECT_TIMEOUT"
	EnvLoginSettleWait     = "LOGIN_SETTLE_WAIT"
	EnvFormSettleWait      = "BOOKING_FORM_SETTLE_WAIT"
)

// AuthKeys are required before any session probe or login attempt.
var AuthKeys = []string{
	EnvStorageStatePath,
	EnvBookingPageURL,
	EnvMicrosoftEmail,
	EnvMicrosoftPwd,
}

// BookingKeys are required before any booking-form interaction.
var BookingKeys = []string{
	EnvNonInteractive,
	EnvBookingDate,
	EnvBookingTimeStart,
	EnvBookingTimeEnd,
	EnvBookingFacility,
	EnvBookingPurpose,
	EnvBookingCoBooker,
	EnvBookingDebug,
}
