package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"fbsbot/internal/flow"
	"fbsbot/pkg/browser"
	"fbsbot/pkg/config"
	apperrors "fbsbot/pkg/errors"
	"fbsbot/pkg/logger"

	"github.com/playwright-community/playwright-go"
)

// Login page selectors and hosts for the Microsoft OAuth chain in front
// of the campus identity provider. Site-specific and brittle by nature.
const (
	selectorEmailInput    = "#i0116"
	selectorEmailNext     = "#idSIButton9"
	selectorPasswordInput = "#passwordInput"
	selectorLoginSubmit   = "#submitButton"

	hostMicrosoftLogin = "login.microsoftonline.com"
	hostCampusLogin    = "login2.smu.edu.sg"

	passwordLinkName = "Use your password instead"
)

var idpRedirectPattern = regexp.MustCompile(
	regexp.QuoteMeta(hostCampusLogin) + "|" + regexp.QuoteMeta(hostMicrosoftLogin),
)

// PlaywrightProber checks the stored session by loading the protected
// booking page and looking for a login redirect.
type PlaywrightProber struct {
	session *browser.Session
	cfg     *config.Config
	logger  *logger.Logger
}

func NewPlaywrightProber(session *browser.Session, cfg *config.Config, log *logger.Logger) *PlaywrightProber {
	return &PlaywrightProber{
		session: session,
		cfg:     cfg,
		logger:  log,
	}
}

func (p *PlaywrightProber) Probe(ctx context.Context) error {
	p.logger.Info("Validating stored authentication state")

	if _, err := os.Stat(p.cfg.StorageStatePath); err != nil {
		p.logger.Info("No authentication file found", "auth_file", p.cfg.StorageStatePath)
		return apperrors.SessionProbe("no stored session artifact", err)
	}

	page, browserCtx, err := p.session.NewPage(p.cfg.StorageStatePath)
	if err != nil {
		return apperrors.SessionProbe("could not load stored session", err)
	}
	defer func() {
		if err := browserCtx.Close(); err != nil {
			p.logger.Warn("Closing probe context failed", "error", err)
		}
	}()

	p.logger.Debug("Testing protected page access", "url", p.cfg.BookingPageURL)
	if _, err := page.Goto(p.cfg.BookingPageURL, playwright.PageGotoOptions{
		Timeout: playwright.Float(float64(p.cfg.AuthProbeTimeout.Milliseconds())),
	}); err != nil {
		return apperrors.SessionProbe("protected page unreachable", err)
	}

	currentURL := page.URL()
	loggedIn := !strings.Contains(currentURL, "login")
	p.logger.Info("Auth validation completed", "current_url", currentURL, "is_logged_in", loggedIn)

	if !loggedIn {
		return apperrors.SessionProbe("stored session redirected to login", nil)
	}
	return nil
}

// PlaywrightLogin drives the full OAuth sequence and saves the storage
// state on success.
type PlaywrightLogin struct {
	session *browser.Session
	cfg     *config.Config
	logger  *logger.Logger
}

func NewPlaywrightLogin(session *browser.Session, cfg *config.Config, log *logger.Logger) *PlaywrightLogin {
	return &PlaywrightLogin{
		session: session,
		cfg:     cfg,
		logger:  log,
	}
}

func (l *PlaywrightLogin) Login(ctx context.Context) error {
	l.logger.Info("Starting authentication flow")

	page, browserCtx, err := l.session.NewPage("")
	if err != nil {
		return apperrors.Authentication("could not open login context", err, "", "open login context")
	}
	defer func() {
		if err := browserCtx.Close(); err != nil {
			l.logger.Warn("Closing auth context failed", "error", err)
		}
	}()

	pipeline := flow.NewPipeline("authentication", l.logger,
		flow.NewStep("open booking page", func(ctx context.Context) error {
			_, err := page.Goto(l.cfg.BookingPageURL)
			return err
		}),
		flow.NewStep("enter email", func(ctx context.Context) error {
			return page.Locator(selectorEmailInput).Fill(l.cfg.MicrosoftEmail)
		}),
		flow.NewStep("submit email", func(ctx context.Context) error {
			return page.Locator(selectorEmailNext).Click()
		}),
		flow.NewStep("await identity provider redirect", func(ctx context.Context) error {
			if err := page.WaitForURL(idpRedirectPattern); err != nil {
				return err
			}
			// The redirect chain keeps loading after the URL settles
			// and there is no readiness signal to wait on.
			page.WaitForTimeout(float64(l.cfg.LoginSettleWait.Milliseconds()))
			return nil
		}),
		flow.NewStep("switch to password login", func(ctx context.Context) error {
			if !strings.Contains(page.URL(), hostMicrosoftLogin) {
				return nil
			}
			l.logger.Debug("Detected Microsoft login page")
			if err := page.GetByRole(*playwright.AriaRoleLink, playwright.PageGetByRoleOptions{
				Name: passwordLinkName,
			}).Click(); err != nil {
				return err
			}
			return page.WaitForURL(fmt.Sprintf("**/%s/**", hostCampusLogin))
		}),
		flow.NewStep("enter password", func(ctx context.Context) error {
			return page.Locator(selectorPasswordInput).Fill(l.cfg.MicrosoftPwd)
		}),
		flow.NewStep("submit login", func(ctx context.Context) error {
			return page.Locator(selectorLoginSubmit).Click()
		}),
		flow.NewStep("await post-login redirect", func(ctx context.Context) error {
			expectedURL := l.cfg.BookingPageURL + "/home"
			l.logger.Debug("Waiting for auth redirect", "expected_url", expectedURL)
			return page.WaitForURL(expectedURL, playwright.PageWaitForURLOptions{
				Timeout:   playwright.Float(float64(l.cfg.AuthRedirectTimeout.Milliseconds())),
				WaitUntil: playwright.WaitUntilStateCommit,
			})
		}),
		flow.NewStep("save session state", func(ctx context.Context) error {
			l.logger.Debug("Saving auth state", "auth_file", l.cfg.StorageStatePath)
			_, err := browserCtx.StorageState(l.cfg.StorageStatePath)
			return err
		}),
	)

	if err := pipeline.Run(ctx); err != nil {
		var stepErr *flow.StepError
		step := ""
		if errors.As(err, &stepErr) {
			step = stepErr.Step
		}
		return apperrors.Authentication("login sequence did not complete", err, page.URL(), step)
	}

	l.logger.Info("Authentication successful", "final_url", page.URL())
	return nil
}
