// Package browser wraps the Playwright runtime behind a session type:
// one launched browser per run, short-lived contexts per phase, and a
// close that is safe to defer on every exit path.
package browser

import (
	"fmt"

	"fbsbot/pkg/logger"

	"github.com/playwright-community/playwright-go"
)

type Options struct {
	// Headless is disabled on debug runs so the form can be watched.
	Headless bool
}

type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	log     *logger.Logger
	closed  bool
}

func Launch(opts Options, log *logger.Logger) (*Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("starting playwright driver: %w", err)
	}

	log.Info("Launching browser", "headless", opts.Headless)
	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launching chromium: %w", err)
	}

	return &Session{
		pw:      pw,
		browser: b,
		log:     log,
	}, nil
}

// NewPage opens a fresh browser context and a page in it. A non-empty
// storageStatePath seeds the context with the persisted session
// artifact. The returned context must be closed by the caller.
func (s *Session) NewPage(storageStatePath string) (playwright.Page, playwright.BrowserContext, error) {
	ctxOpts := playwright.BrowserNewContextOptions{}
	if storageStatePath != "" {
		ctxOpts.StorageStatePath = playwright.String(storageStatePath)
	}

	browserCtx, err := s.browser.NewContext(ctxOpts)
	if err != nil {
		return nil, nil, fmt.Errorf("opening browser context: %w", err)
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		_ = browserCtx.Close()
		return nil, nil, fmt.Errorf("opening page: %w", err)
	}

	return page, browserCtx, nil
}

// Close releases the browser and the Playwright runtime. Idempotent, so
// it can be deferred alongside explicit shutdown on the success path.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true

	if err := s.browser.Close(); err != nil {
		s.log.Warn("Closing browser failed", "error", err)
	}
	if err := s.pw.Stop(); err != nil {
		s.log.Warn("Stopping playwright driver failed", "error", err)
	}
}
