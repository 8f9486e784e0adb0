package browser

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"menuscrape/internal/config"
)

// Session owns the browser process and the primary page handle. The whole
// run shares one session; its cookies and cart contents are the only
// mutable state in the system, which is why the orchestrator resets it to
// the entry point before each category.
type Session struct {
	browser *rod.Browser
	page    *rod.Page
	cfg     *config.Config
	logger  *slog.Logger
}

// New launches a browser and opens the primary page.
func New(cfg *config.Config, logger *slog.Logger) (*Session, error) {
	s := &Session{
		cfg:    cfg,
		logger: logger.With("component", "browser_session"),
	}

	launchURL, err := s.launchBrowser()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	b := rod.New().ControlURL(launchURL)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	s.browser = b

	page, err := stealth.Page(b)
	if err != nil {
		return nil, fmt.Errorf("open primary page: %w", err)
	}
	if err := s.preparePage(page); err != nil {
		return nil, err
	}
	s.page = page

	s.logger.Info("browser session ready", "headless", cfg.Browser.Headless)
	return s, nil
}

// launchBrowser starts a Chromium instance with appropriate flags.
func (s *Session) launchBrowser() (string, error) {
	l := launcher.New().
		Headless(s.cfg.Browser.Headless).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("no-sandbox").
		Set("disable-setuid-sandbox").
		Set("disable-blink-features", "AutomationControlled").
		Set("window-size", fmt.Sprintf("%d,%d", s.cfg.Browser.WindowWidth, s.cfg.Browser.WindowHeight))

	return l.Launch()
}

// preparePage applies the user agent and viewport to a fresh page.
func (s *Session) preparePage(page *rod.Page) error {
	if ua := s.cfg.Browser.UserAgent; ua != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: ua}); err != nil {
			s.logger.Warn("failed to set user agent", "error", err)
		}
	}
	err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             s.cfg.Browser.WindowWidth,
		Height:            s.cfg.Browser.WindowHeight,
		DeviceScaleFactor: 1,
	})
	if err != nil {
		return fmt.Errorf("set viewport: %w", err)
	}
	return nil
}

// Page returns the primary page handle.
func (s *Session) Page() *rod.Page {
	return s.page
}

// NewProductPage opens a short-lived stealth page navigated to the given
// URL. Product pages are opened separately so the category listing page's
// DOM stays stable while the product is inspected; the caller must close
// the page before the next product begins.
func (s *Session) NewProductPage(url string) (*rod.Page, error) {
	page, err := stealth.Page(s.browser)
	if err != nil {
		return nil, fmt.Errorf("open product page: %w", err)
	}
	if err := s.preparePage(page); err != nil {
		_ = page.Close()
		return nil, err
	}
	if err := page.Timeout(s.cfg.Waits.NavTimeout).Navigate(url); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("navigate %s: %w", url, err)
	}
	return page, nil
}

// Screenshot captures a full-page screenshot of the primary page to path.
func (s *Session) Screenshot(path string) error {
	data, err := s.page.Screenshot(true, nil)
	if err != nil {
		return fmt.Errorf("capture screenshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write screenshot: %w", err)
	}
	s.logger.Info("screenshot saved", "path", path)
	return nil
}

// ScreenshotPage captures a full-page screenshot of an arbitrary page.
func (s *Session) ScreenshotPage(page *rod.Page, path string) error {
	data, err := page.Screenshot(true, nil)
	if err != nil {
		return fmt.Errorf("capture screenshot: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Close shuts down the browser and releases resources. Safe to call after
// a partial failure; teardown is unconditional.
func (s *Session) Close() {
	if s.page != nil {
		_ = s.page.Close()
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			s.logger.Warn("browser close", "error", err)
		}
	}
}

// ErrorArtifactPath builds a timestamped filename for failure screenshots.
func ErrorArtifactPath(prefix string) string {
	return fmt.Sprintf("%s_%d.png", prefix, time.Now().Unix())
}
