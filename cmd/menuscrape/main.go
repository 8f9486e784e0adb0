package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"menuscrape/internal/browser"
	"menuscrape/internal/config"
	"menuscrape/internal/scrape"
	"menuscrape/internal/storage"
)

var (
	cfgFile        string
	verbose        bool
	mainCategory   string
	secondCategory string
	thirdCategory  string
	outputStem     string
	outputFormat   string
	headless       bool
	headlessSet    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "menuscrape",
		Short: "menuscrape — storefront menu category and price scraper",
		Long: `menuscrape walks a dynamically rendered storefront menu: it resolves the
three-tier category hierarchy, enumerates products, and extracts per-size
nutrition and price data into a CSV file (or MongoDB collection).`,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(scrapeCmd())
	rootCmd.AddCommand(categoriesCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// scrapeCmd creates the "scrape" subcommand.
func scrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape the configured category chain",
		Long:  "Resolve the configured category chain and extract every product's size, nutrition and price data.",
		RunE:  runScrape,
	}
	addTargetFlags(cmd)
	cmd.Flags().StringVarP(&outputStem, "output", "o", "", "output filename stem (default: second-level category name)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format: csv, mongodb")
	return cmd
}

// categoriesCmd creates the "categories" subcommand: a dry run that
// resolves the chain and prints the target tree without extracting.
func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Resolve and list the target categories without scraping",
		RunE:  runCategories,
	}
	addTargetFlags(cmd)
	return cmd
}

func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&mainCategory, "main", "", "main category name")
	cmd.Flags().StringVar(&secondCategory, "second", "", "second-level category name")
	cmd.Flags().StringVar(&thirdCategory, "third", "", "third-level name substring filter")
	cmd.Flags().BoolVar(&headless, "headless", true, "run the browser headless")
	cmd.PreRun = func(c *cobra.Command, _ []string) {
		headlessSet = c.Flags().Changed("headless")
	}
}

// runScrape executes the scrape command.
func runScrape(cmd *cobra.Command, args []string) error {
	logger := setupLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	errlog, err := storage.NewErrorLog(cfg.Storage.ErrorLog)
	if err != nil {
		return fmt.Errorf("open error log: %w", err)
	}
	defer errlog.Close()

	store, err := storage.New(cfg.Storage.Type, cfg.Storage.OutputDir, cfg.OutputFilename(),
		cfg.Storage.MongoURI, cfg.Storage.MongoDatabase, cfg.Storage.MongoCollection, logger)
	if err != nil {
		return fmt.Errorf("create storage: %w", err)
	}
	defer store.Close()

	session, err := browser.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("start browser: %w", err)
	}
	defer session.Close()

	runner := scrape.NewRunner(cfg, logger, errlog, session, store)
	if err := runner.Run(); err != nil {
		// Unrecoverable top-level failure: log it, keep a visual of the
		// page state, then let the deferred teardown run.
		errlog.Logf("run failed: %v", err)
		artifact := browser.ErrorArtifactPath("global_error")
		if serr := session.Screenshot(artifact); serr != nil {
			logger.Warn("failure screenshot not captured", "error", serr)
		}
		return err
	}

	fmt.Printf("\nScrape complete. Records written via %s storage.\n", store.Name())
	return nil
}

// runCategories executes the categories command.
func runCategories(cmd *cobra.Command, args []string) error {
	logger := setupLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	errlog, err := storage.NewErrorLog(cfg.Storage.ErrorLog)
	if err != nil {
		return fmt.Errorf("open error log: %w", err)
	}
	defer errlog.Close()

	session, err := browser.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("start browser: %w", err)
	}
	defer session.Close()

	runner := scrape.NewRunner(cfg, logger, errlog, session, nil)
	cats, err := runner.ResolveChain()
	if err != nil {
		return err
	}

	fmt.Printf("%s / %s:\n", cfg.Target.MainCategory, cfg.Target.SecondCategory)
	total := 0
	for _, c := range cats {
		fmt.Printf("  %-30s %3d products  (%s)\n", c.Name, c.ProductCount, c.ID)
		total += c.ProductCount
	}
	fmt.Printf("  %d products total\n", total)
	return nil
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("menuscrape %s\n", config.Version)
		},
	}
}

// configCmd creates the "config" subcommand for inspecting configuration.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			fmt.Printf("Target:\n")
			fmt.Printf("  Main Category:     %s\n", cfg.Target.MainCategory)
			fmt.Printf("  Second Category:   %s\n", cfg.Target.SecondCategory)
			fmt.Printf("  Third Filter:      %q\n", cfg.Target.ThirdCategory)
			fmt.Printf("  Output File:       %s\n", cfg.OutputFilename())
			fmt.Printf("\nSite:\n")
			fmt.Printf("  Entry URL:         %s\n", cfg.Site.EntryURL)
			fmt.Printf("  Cart URL:          %s\n", cfg.Site.CartURL)
			fmt.Printf("  Main Sections:     %v\n", cfg.Site.MainSections)
			fmt.Printf("\nBrowser:\n")
			fmt.Printf("  Headless:          %v\n", cfg.Browser.Headless)
			fmt.Printf("  Window:            %dx%d\n", cfg.Browser.WindowWidth, cfg.Browser.WindowHeight)
			fmt.Printf("\nWaits:\n")
			fmt.Printf("  Navigation:        %s\n", cfg.Waits.NavTimeout)
			fmt.Printf("  Selector:          %s\n", cfg.Waits.SelectorTimeout)
			fmt.Printf("  Cart:              %s\n", cfg.Waits.CartTimeout)
			fmt.Printf("\nStorage:\n")
			fmt.Printf("  Type:              %s\n", cfg.Storage.Type)
			fmt.Printf("  Output Dir:        %s\n", cfg.Storage.OutputDir)
			fmt.Printf("  Error Log:         %s\n", cfg.Storage.ErrorLog)
			return nil
		},
	}
}

// loadConfig loads configuration and applies CLI overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	applyCLIOverrides(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyCLIOverrides applies command-line flag values to the config.
func applyCLIOverrides(cfg *config.Config) {
	if mainCategory != "" {
		cfg.Target.MainCategory = mainCategory
	}
	if secondCategory != "" {
		cfg.Target.SecondCategory = secondCategory
	}
	if thirdCategory != "" {
		cfg.Target.ThirdCategory = thirdCategory
	}
	if outputStem != "" {
		cfg.Target.OutputStem = outputStem
	}
	if outputFormat != "" {
		cfg.Storage.Type = outputFormat
	}
	if headlessSet {
		cfg.Browser.Headless = headless
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
}

func setupLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	return slog.New(handler)
}
