package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for menuscrape.
type Config struct {
	Target  TargetConfig  `mapstructure:"target"  yaml:"target"`
	Site    SiteConfig    `mapstructure:"site"    yaml:"site"`
	Browser BrowserConfig `mapstructure:"browser" yaml:"browser"`
	Waits   WaitConfig    `mapstructure:"waits"   yaml:"waits"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// TargetConfig names the category chain to scrape.
type TargetConfig struct {
	MainCategory   string `mapstructure:"main_category"   yaml:"main_category"`
	SecondCategory string `mapstructure:"second_category" yaml:"second_category"`
	// ThirdCategory is an optional substring filter over third-level names.
	// Empty means all third-level categories under the second-level target.
	ThirdCategory string `mapstructure:"third_category" yaml:"third_category"`
	OutputStem    string `mapstructure:"output_stem"    yaml:"output_stem"`
}

// SiteConfig pins the storefront's URLs and structural anchors.
type SiteConfig struct {
	EntryURL string `mapstructure:"entry_url" yaml:"entry_url"`
	CartURL  string `mapstructure:"cart_url"  yaml:"cart_url"`
	BaseURL  string `mapstructure:"base_url"  yaml:"base_url"`
	// MainSections is the allow-list of top-level section ids.
	MainSections []string `mapstructure:"main_sections" yaml:"main_sections"`
	// AnchorSection is the section id whose presence proves the menu rendered.
	AnchorSection string `mapstructure:"anchor_section" yaml:"anchor_section"`
}

// BrowserConfig controls the browser session.
type BrowserConfig struct {
	Headless     bool   `mapstructure:"headless"      yaml:"headless"`
	WindowWidth  int    `mapstructure:"window_width"  yaml:"window_width"`
	WindowHeight int    `mapstructure:"window_height" yaml:"window_height"`
	UserAgent    string `mapstructure:"user_agent"    yaml:"user_agent"`
}

// WaitConfig bounds every timed wait and settle delay in the pipeline.
// Settle delays exist to accommodate client-side rendering latency and to
// keep the access pattern from looking scripted.
type WaitConfig struct {
	NavTimeout      time.Duration `mapstructure:"nav_timeout"       yaml:"nav_timeout"`
	SelectorTimeout time.Duration `mapstructure:"selector_timeout"  yaml:"selector_timeout"`
	CartTimeout     time.Duration `mapstructure:"cart_timeout"      yaml:"cart_timeout"`
	EntrySettle     time.Duration `mapstructure:"entry_settle"      yaml:"entry_settle"`
	ScrollSettle    time.Duration `mapstructure:"scroll_settle"     yaml:"scroll_settle"`
	CartSettle      time.Duration `mapstructure:"cart_settle"       yaml:"cart_settle"`
	StepDelay       time.Duration `mapstructure:"step_delay"        yaml:"step_delay"`
	// Variant settles are randomized: base plus up to jitter.
	SoldOutSettle  time.Duration `mapstructure:"sold_out_settle"  yaml:"sold_out_settle"`
	InStockSettle  time.Duration `mapstructure:"in_stock_settle"  yaml:"in_stock_settle"`
	SettleJitter   time.Duration `mapstructure:"settle_jitter"    yaml:"settle_jitter"`
	OverlayTimeout time.Duration `mapstructure:"overlay_timeout"  yaml:"overlay_timeout"`
}

// StorageConfig controls record output and the diagnostic log.
type StorageConfig struct {
	Type            string `mapstructure:"type"             yaml:"type"` // csv, mongodb
	OutputDir       string `mapstructure:"output_dir"       yaml:"output_dir"`
	ErrorLog        string `mapstructure:"error_log"        yaml:"error_log"`
	MongoURI        string `mapstructure:"mongo_uri"        yaml:"mongo_uri"`
	MongoDatabase   string `mapstructure:"mongo_database"   yaml:"mongo_database"`
	MongoCollection string `mapstructure:"mongo_collection" yaml:"mongo_collection"`
}

// LoggingConfig controls console logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Target: TargetConfig{
			MainCategory:   "Drinks",
			SecondCategory: "Cold Coffee",
		},
		Site: SiteConfig{
			EntryURL:      "https://www.starbucks.com/menu?storeNumber=56450-290146&distance=0.2118&confirmedOrderingUnavailable=56450-290146",
			CartURL:       "https://www.starbucks.com/menu/cart",
			BaseURL:       "https://www.starbucks.com",
			MainSections:  []string{"drinks", "food", "at-home-coffee"},
			AnchorSection: "drinks",
		},
		Browser: BrowserConfig{
			Headless:     true,
			WindowWidth:  1366,
			WindowHeight: 768,
			UserAgent:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
		},
		Waits: WaitConfig{
			NavTimeout:      60 * time.Second,
			SelectorTimeout: 30 * time.Second,
			CartTimeout:     10 * time.Second,
			EntrySettle:     2 * time.Second,
			ScrollSettle:    1500 * time.Millisecond,
			CartSettle:      3 * time.Second,
			StepDelay:       1 * time.Second,
			SoldOutSettle:   1 * time.Second,
			InStockSettle:   2 * time.Second,
			SettleJitter:    1500 * time.Millisecond,
			OverlayTimeout:  2 * time.Second,
		},
		Storage: StorageConfig{
			Type:            "csv",
			OutputDir:       ".",
			ErrorLog:        "scrape_error_log.txt",
			MongoURI:        "mongodb://localhost:27017",
			MongoDatabase:   "menuscrape",
			MongoCollection: "records",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

var unsafeFilenameChars = regexp.MustCompile(`[\\/*?:"<>|]`)

// SanitizeFilename replaces characters that are illegal in filenames.
func SanitizeFilename(name string) string {
	return strings.TrimSpace(unsafeFilenameChars.ReplaceAllString(name, "_"))
}

// OutputFilename derives the CSV filename from the configured stem, falling
// back to the second-level category name.
func (c *Config) OutputFilename() string {
	stem := c.Target.OutputStem
	if stem == "" {
		stem = fmt.Sprintf("menu_%s", c.Target.SecondCategory)
	}
	return SanitizeFilename(stem) + ".csv"
}
