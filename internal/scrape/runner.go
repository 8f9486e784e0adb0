package scrape

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/schollz/progressbar/v3"

	"menuscrape/internal/browser"
	"menuscrape/internal/config"
	"menuscrape/internal/extract"
	"menuscrape/internal/menu"
	"menuscrape/internal/storage"
	"menuscrape/internal/types"
)

// Runner wires gateway, resolver, enumerator, and extractor into one
// sequential pass over the configured category chain.
type Runner struct {
	cfg       *config.Config
	logger    *slog.Logger
	errlog    *storage.ErrorLog
	session   *browser.Session
	gateway   *menu.Gateway
	resolver  *menu.Resolver
	enum      *menu.Enumerator
	extractor *extract.Extractor
	store     storage.Writer
}

// NewRunner assembles a Runner from its collaborators.
func NewRunner(cfg *config.Config, logger *slog.Logger, errlog *storage.ErrorLog,
	session *browser.Session, store storage.Writer) *Runner {
	return &Runner{
		cfg:       cfg,
		logger:    logger.With("component", "runner"),
		errlog:    errlog,
		session:   session,
		gateway:   menu.NewGateway(cfg, logger, errlog),
		resolver:  menu.NewResolver(cfg, logger, errlog),
		enum:      menu.NewEnumerator(cfg, logger, errlog),
		extractor: extract.NewExtractor(cfg, logger, errlog, session),
		store:     store,
	}
}

// Run executes one full pass: validate the configured chain, compute the
// expected product total, then scrape each target category with failure
// isolation at category granularity. A LookupError aborts the run before
// any product row is written.
func (r *Runner) Run() error {
	page := r.session.Page()

	if err := r.gateway.Open(page); err != nil {
		return err
	}

	targets, err := r.resolveChain(page)
	if err != nil {
		return err
	}

	total := TotalProducts(targets)
	if total == 0 {
		return types.ErrNoProducts
	}

	r.logger.Info("scrape plan ready",
		"categories", len(targets),
		"products", total,
		"output", r.store.Name(),
	)

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription("scraping"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
	)

	// Category ids outlive the element handles that produced them; each
	// iteration re-resolves fresh handles from scratch.
	ids := make([]string, len(targets))
	for i, c := range targets {
		ids[i] = c.ID
	}

	for _, id := range ids {
		if err := r.scrapeCategory(page, id, bar); err != nil {
			r.errlog.Logf("category %s failed: %v", id, err)
			r.logger.Error("category failed, continuing", "category", id, "error", err)
		}
	}

	_ = bar.Finish()
	r.logger.Info("scrape complete", "second_category", r.cfg.Target.SecondCategory)
	return nil
}

// ResolveChain resolves and returns the target third-level categories
// without extracting anything. Used by Run and by the dry-run listing
// command.
func (r *Runner) ResolveChain() ([]menu.Category, error) {
	page := r.session.Page()
	if err := r.gateway.Open(page); err != nil {
		return nil, err
	}
	return r.resolveChain(page)
}

// resolveChain walks main -> second -> third for the configured targets.
// A name missing from any tier aborts with the available alternatives.
func (r *Runner) resolveChain(page *rod.Page) ([]menu.Category, error) {
	mains := r.resolver.MainCategories(page)
	if len(mains) == 0 {
		return nil, types.ErrNoCategories
	}

	main, ok := FindByName(mains, r.cfg.Target.MainCategory)
	if !ok {
		return nil, &types.LookupError{Tier: "main", Name: r.cfg.Target.MainCategory, Available: Names(mains)}
	}

	seconds := r.resolver.SecondLevel(page, main)
	second, ok := FindByName(seconds, r.cfg.Target.SecondCategory)
	if !ok {
		return nil, &types.LookupError{Tier: "second", Name: r.cfg.Target.SecondCategory, Available: Names(seconds)}
	}

	thirds := r.resolver.ThirdLevel(page, second)
	if len(thirds) == 0 {
		return nil, types.ErrNoCategories
	}

	if substr := r.cfg.Target.ThirdCategory; substr != "" {
		filtered := FilterBySubstring(thirds, substr)
		if len(filtered) == 0 {
			return nil, &types.LookupError{Tier: "third", Name: substr, Available: Names(thirds)}
		}
		return filtered, nil
	}
	return thirds, nil
}

// scrapeCategory re-opens the gateway, re-resolves the chain (prior live
// handles were invalidated by product-page navigation), locates the target
// by id, and runs the enumerate/extract pipeline over it.
func (r *Runner) scrapeCategory(page *rod.Page, id string, bar *progressbar.ProgressBar) error {
	if err := r.gateway.Open(page); err != nil {
		return err
	}

	targets, err := r.resolveChain(page)
	if err != nil {
		return err
	}

	cat, ok := FindByID(targets, id)
	if !ok {
		return fmt.Errorf("third-level category %q missing after re-resolution", id)
	}

	if cat.ProductCount == 0 {
		r.logger.Info("category has no products, skipping", "category", cat.Path)
		return nil
	}

	products := r.enum.ListProducts(cat)
	for _, p := range products {
		bar.Describe(truncateName(p.Name, 20))
		_ = bar.Add(1)

		recs, err := r.extractor.Product(p)
		if err != nil {
			r.errlog.Logf("product %s failed: %v | URL: %s", p.Name, err, p.URL)
			continue
		}
		for _, rec := range recs {
			if err := r.store.Append(rec); err != nil {
				return err
			}
		}

		time.Sleep(r.cfg.Waits.StepDelay)
	}

	r.logger.Info("category complete", "category", cat.Path)
	return nil
}

func truncateName(name string, max int) string {
	if len(name) <= max {
		return name
	}
	return name[:max] + "..."
}
