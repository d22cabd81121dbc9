package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/playwright-community/playwright-go"

	"instantapply/config"
)

// ErrNoEngineAvailable means every configured browser engine failed to
// launch. This is the one session-level failure that is fatal for an attempt.
var ErrNoEngineAvailable = errors.New("no browser engine available")

// Session is one browser engine plus its isolated context and page. Exactly
// one attempt owns a session; sessions are never shared or reused.
type Session struct {
	Engine  string
	Page    playwright.Page
	Context playwright.BrowserContext
	Browser playwright.Browser

	pw *playwright.Playwright
}

// SessionManager launches and tears down browser sessions. Engine diversity
// exists because individual engines are empirically unstable on some
// platforms; the manager walks the configured list until one launches.
type SessionManager struct {
	cfg config.AutomationConfig
}

func NewSessionManager(cfg config.AutomationConfig) *SessionManager {
	return &SessionManager{cfg: cfg}
}

// Acquire starts the driver and tries each configured engine in order.
// Returns ErrNoEngineAvailable only when all of them fail.
func (m *SessionManager) Acquire() (*Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	for _, engine := range m.cfg.Engines {
		browserType, launchArgs := m.browserType(pw, engine)
		if browserType == nil {
			log.Printf("Unknown browser engine %q, skipping", engine)
			continue
		}

		log.Printf("Attempting to launch browser using %s", engine)
		browser, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
			Headless: playwright.Bool(m.cfg.Headless),
			Args:     launchArgs,
		})
		if err != nil {
			log.Printf("Failed to launch %s: %v", engine, err)
			continue
		}

		session, err := m.newSession(pw, browser, engine)
		if err != nil {
			log.Printf("Failed to configure %s session: %v", engine, err)
			if closeErr := browser.Close(); closeErr != nil {
				log.Printf("Error closing %s after setup failure: %v", engine, closeErr)
			}
			continue
		}

		log.Printf("Successfully launched %s", engine)
		return session, nil
	}

	if err := pw.Stop(); err != nil {
		log.Printf("Error stopping playwright after launch failures: %v", err)
	}
	return nil, ErrNoEngineAvailable
}

func (m *SessionManager) browserType(pw *playwright.Playwright, engine string) (playwright.BrowserType, []string) {
	switch engine {
	case "chromium":
		return pw.Chromium, []string{"--no-sandbox", "--disable-blink-features=AutomationControlled"}
	case "firefox":
		return pw.Firefox, nil
	case "webkit":
		return pw.WebKit, nil
	}
	return nil, nil
}

// newSession builds the context and page: fixed viewport, realistic user
// agent, extended timeouts, non-essential resources blocked for speed, and
// console/page-error logging wired up.
func (m *SessionManager) newSession(pw *playwright.Playwright, browser playwright.Browser, engine string) (*Session, error) {
	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  m.cfg.ViewportWidth,
			Height: m.cfg.ViewportHeight,
		},
		UserAgent: playwright.String(m.cfg.UserAgent),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create context: %w", err)
	}

	context.SetDefaultNavigationTimeout(float64(m.cfg.NavigationTimeout.Milliseconds()))
	context.SetDefaultTimeout(float64(m.cfg.ActionTimeout.Milliseconds()))

	// Images, fonts and media never affect which controls exist on the page.
	err = context.Route("**/*", func(route playwright.Route) {
		switch route.Request().ResourceType() {
		case "image", "font", "media":
			if err := route.Abort(); err != nil {
				log.Printf("Failed to abort %s request: %v", route.Request().ResourceType(), err)
			}
		default:
			if err := route.Continue(); err != nil {
				log.Printf("Failed to continue request: %v", err)
			}
		}
	})
	if err != nil {
		return nil, fmt.Errorf("could not install resource routes: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("could not create page: %w", err)
	}

	page.OnConsole(func(msg playwright.ConsoleMessage) {
		if msg.Type() == "error" {
			log.Printf("Page console error: %s", msg.Text())
		}
	})
	page.OnPageError(func(pageErr error) {
		log.Printf("Page error: %v", pageErr)
	})

	return &Session{
		Engine:  engine,
		Page:    page,
		Context: context,
		Browser: browser,
		pw:      pw,
	}, nil
}

// Release closes everything the session owns. Close-time errors are logged
// and swallowed; cleanup failures must never mask the attempt's outcome.
func (m *SessionManager) Release(session *Session) {
	if session == nil {
		return
	}
	if session.Page != nil {
		if err := session.Page.Close(); err != nil {
			log.Printf("Error closing page: %v", err)
		}
	}
	if session.Context != nil {
		if err := session.Context.Close(); err != nil {
			log.Printf("Error closing context: %v", err)
		}
	}
	if session.Browser != nil {
		if err := session.Browser.Close(); err != nil {
			log.Printf("Error closing browser: %v", err)
		}
	}
	if session.pw != nil {
		if err := session.pw.Stop(); err != nil {
			log.Printf("Error stopping playwright: %v", err)
		}
	}
}
