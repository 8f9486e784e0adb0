package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from file, environment, and defaults.
// Priority (highest to lowest): CLI flags > env vars > config file > defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	setDefaults(v, cfg)

	v.SetEnvPrefix("MENUSCRAPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("menuscrape")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".menuscrape"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if not explicitly specified
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers default values in viper.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("target.main_category", cfg.Target.MainCategory)
	v.SetDefault("target.second_category", cfg.Target.SecondCategory)
	v.SetDefault("target.third_category", cfg.Target.ThirdCategory)
	v.SetDefault("target.output_stem", cfg.Target.OutputStem)

	v.SetDefault("site.entry_url", cfg.Site.EntryURL)
	v.SetDefault("site.cart_url", cfg.Site.CartURL)
	v.SetDefault("site.base_url", cfg.Site.BaseURL)
	v.SetDefault("site.main_sections", cfg.Site.MainSections)
	v.SetDefault("site.anchor_section", cfg.Site.AnchorSection)

	v.SetDefault("browser.headless", cfg.Browser.Headless)
	v.SetDefault("browser.window_width", cfg.Browser.WindowWidth)
	v.SetDefault("browser.window_height", cfg.Browser.WindowHeight)
	v.SetDefault("browser.user_agent", cfg.Browser.UserAgent)

	v.SetDefault("waits.nav_timeout", cfg.Waits.NavTimeout)
	v.SetDefault("waits.selector_timeout", cfg.Waits.SelectorTimeout)
	v.SetDefault("waits.cart_timeout", cfg.Waits.CartTimeout)
	v.SetDefault("waits.entry_settle", cfg.Waits.EntrySettle)
	v.SetDefault("waits.scroll_settle", cfg.Waits.ScrollSettle)
	v.SetDefault("waits.cart_settle", cfg.Waits.CartSettle)
	v.SetDefault("waits.step_delay", cfg.Waits.StepDelay)
	v.SetDefault("waits.sold_out_settle", cfg.Waits.SoldOutSettle)
	v.SetDefault("waits.in_stock_settle", cfg.Waits.InStockSettle)
	v.SetDefault("waits.settle_jitter", cfg.Waits.SettleJitter)
	v.SetDefault("waits.overlay_timeout", cfg.Waits.OverlayTimeout)

	v.SetDefault("storage.type", cfg.Storage.Type)
	v.SetDefault("storage.output_dir", cfg.Storage.OutputDir)
	v.SetDefault("storage.error_log", cfg.Storage.ErrorLog)
	v.SetDefault("storage.mongo_uri", cfg.Storage.MongoURI)
	v.SetDefault("storage.mongo_database", cfg.Storage.MongoDatabase)
	v.SetDefault("storage.mongo_collection", cfg.Storage.MongoCollection)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
}
