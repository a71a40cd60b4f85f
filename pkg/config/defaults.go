package config

import "time"

const (
	DefaultLogLevel = "info"
	DefaultLogDir   = "./logs"
	DefaultEnvFile  = ".env"

	DefaultAuthProbeTimeout    = 30 * time.Second
	DefaultAuthRedirectTimeout = 10 * time.Second

	// The identity provider redirect chain has no reliable readiness
	// signal; the login flow pauses this long once the redirect lands.
	DefaultLoginSettleWait = 5 * time.Second

	// The booking form reloads itself after time selection and wipes any
	// field filled during the reload. No readiness signal exists, so the
	// orchestrator waits this long before filling the purpose field. Known
	// fragility: a slow network can outlast this wait.
	DefaultFormSettleWait = 10 * time.Second
)
