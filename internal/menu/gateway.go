package menu

import (
	"log/slog"

	"github.com/go-rod/rod"

	"menuscrape/internal/browser"
	"menuscrape/internal/config"
	"menuscrape/internal/storage"
	"menuscrape/internal/types"
)

// Gateway opens the storefront's menu entry point and verifies the
// top-level category container rendered. Open is idempotent: the
// orchestrator re-invokes it before each category's extraction pass to
// reset session state to a known baseline.
type Gateway struct {
	cfg    *config.Config
	logger *slog.Logger
	errlog *storage.ErrorLog
}

// NewGateway creates a Gateway.
func NewGateway(cfg *config.Config, logger *slog.Logger, errlog *storage.ErrorLog) *Gateway {
	return &Gateway{
		cfg:    cfg,
		logger: logger.With("component", "gateway"),
		errlog: errlog,
	}
}

// Open navigates to the entry URL, waits for the anchor section to render,
// then settles to let client-side rendering finish.
func (g *Gateway) Open(page *rod.Page) error {
	url := g.cfg.Site.EntryURL

	if err := page.Timeout(g.cfg.Waits.NavTimeout).Navigate(url); err != nil {
		g.errlog.Logf("failed to open menu entry point: %v", err)
		return &types.NavigationError{URL: url, Err: err}
	}

	anchor := "section#" + g.cfg.Site.AnchorSection
	if _, err := page.Timeout(g.cfg.Waits.SelectorTimeout).Element(anchor); err != nil {
		g.errlog.Logf("menu entry point did not render (%s): %v", anchor, err)
		return &types.NavigationError{URL: url, Selector: anchor, Err: types.ErrGatewayTimeout}
	}

	// The anchor appearing does not mean hydration finished.
	browser.Settle(g.cfg.Waits.EntrySettle, 0)

	g.logger.Info("menu entry point open", "url", url)
	return nil
}
