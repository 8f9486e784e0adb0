package config

import (
	"fmt"
	"net/url"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if cfg.Target.MainCategory == "" {
		return fmt.Errorf("target.main_category must not be empty")
	}
	if cfg.Target.SecondCategory == "" {
		return fmt.Errorf("target.second_category must not be empty")
	}

	for _, raw := range []struct{ name, value string }{
		{"site.entry_url", cfg.Site.EntryURL},
		{"site.cart_url", cfg.Site.CartURL},
		{"site.base_url", cfg.Site.BaseURL},
	} {
		u, err := url.Parse(raw.value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s %q is not a valid absolute URL", raw.name, raw.value)
		}
	}

	if len(cfg.Site.MainSections) == 0 {
		return fmt.Errorf("site.main_sections must not be empty")
	}
	if cfg.Site.AnchorSection == "" {
		return fmt.Errorf("site.anchor_section must not be empty")
	}

	if cfg.Browser.WindowWidth < 1 || cfg.Browser.WindowHeight < 1 {
		return fmt.Errorf("browser.window_width and browser.window_height must be >= 1")
	}

	if cfg.Waits.NavTimeout <= 0 {
		return fmt.Errorf("waits.nav_timeout must be > 0")
	}
	if cfg.Waits.SelectorTimeout <= 0 {
		return fmt.Errorf("waits.selector_timeout must be > 0")
	}
	if cfg.Waits.CartTimeout <= 0 {
		return fmt.Errorf("waits.cart_timeout must be > 0")
	}
	if cfg.Waits.SettleJitter < 0 {
		return fmt.Errorf("waits.settle_jitter must be >= 0")
	}

	switch cfg.Storage.Type {
	case "csv":
	case "mongodb":
		if cfg.Storage.MongoURI == "" {
			return fmt.Errorf("storage.mongo_uri must be set for mongodb storage")
		}
	default:
		return fmt.Errorf("storage.type %q is not supported (valid: csv, mongodb)", cfg.Storage.Type)
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level %q is not supported (valid: debug, info, warn, error)", cfg.Logging.Level)
	}

	return nil
}
