// Package auth decides whether a saved browser session is still usable
// and re-runs the identity-provider login flow when it is not.
package auth

import (
	"context"

	"fbsbot/pkg/logger"
)

// SessionProber tests whether the persisted session can still reach a
// protected page. A nil return means the session is usable; any error
// is non-fatal and triggers a full login.
type SessionProber interface {
	Probe(ctx context.Context) error
}

// LoginFlow performs the complete interactive login sequence and
// persists the resulting session artifact.
type LoginFlow interface {
	Login(ctx context.Context) error
}

type AuthService interface {
	EnsureAuthenticated(ctx context.Context) (string, error)
}

type gate struct {
	prober SessionProber
	login  LoginFlow
	logger *logger.Logger
}

func NewGate(prober SessionProber, login LoginFlow, log *logger.Logger) AuthService {
	return &gate{
		prober: prober,
		login:  login,
		logger: log,
	}
}

// EnsureAuthenticated probes first and only falls back to the login
// flow when the probe fails. A usable session is never re-authenticated.
func (g *gate) EnsureAuthenticated(ctx context.Context) (string, error) {
	g.logger.Debug("Checking authentication requirement")

	if err := g.prober.Probe(ctx); err == nil {
		g.logger.Info("Using existing authentication")
		return "Use existing valid authentication", nil
	} else {
		g.logger.Warn("Auth validation failed, re-authentication required", "error", err)
	}

	g.logger.Info("Authentication required, starting new flow")
	if err := g.login.Login(ctx); err != nil {
		return "", err
	}
	return "New authentication completed", nil
}
