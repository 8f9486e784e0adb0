package menu

import (
	"log/slog"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"menuscrape/internal/config"
	"menuscrape/internal/storage"
)

// Structural selectors for the three-tier category markup. Kept together
// so markup drift is a one-place fix.
const (
	selMainSection   = "section.pb4.lg-pb6"
	selMainHeading   = "h2.heading2"
	selCategoryTile  = `li[data-e2e="tile"]`
	selTileName      = "div[data-e2e]"
	selThirdMenu     = "div.baseMenu___UpTAi"
	selThirdSection  = "section.pb4.lg-pb6[id]"
	selProductGrid   = "ul.grid.grid--compactGutter"
	selProductItem   = "li.gridItem"
)

// Category is one resolved node of the three-tier hierarchy. Element is a
// live page handle: it is valid only until the next full-page navigation
// and must be re-resolved, never cached, across that boundary.
type Category struct {
	ID           string
	Name         string
	Path         string // "Second Level/Third Level", third tier only
	ProductCount int
	Element      *rod.Element
}

// Resolver performs the three-stage category lookup. Each operation
// observes the current DOM, performs at most one navigating action, and
// returns a list of nodes; any lookup failure yields an empty list plus a
// logged diagnostic, never an error the caller must handle.
type Resolver struct {
	cfg    *config.Config
	logger *slog.Logger
	errlog *storage.ErrorLog
}

// NewResolver creates a Resolver.
func NewResolver(cfg *config.Config, logger *slog.Logger, errlog *storage.ErrorLog) *Resolver {
	return &Resolver{
		cfg:    cfg,
		logger: logger.With("component", "resolver"),
		errlog: errlog,
	}
}

// MainCategories scans the top-level sections and filters them to the
// configured allow-list. Display names come from the section heading, or a
// titleized form of the id when the heading is absent.
func (r *Resolver) MainCategories(page *rod.Page) []Category {
	sections, err := page.Elements(selMainSection)
	if err != nil {
		r.errlog.Logf("main category scan failed: %v", err)
		return nil
	}

	allowed := make(map[string]bool, len(r.cfg.Site.MainSections))
	for _, id := range r.cfg.Site.MainSections {
		allowed[id] = true
	}

	var cats []Category
	for _, sec := range sections {
		id, err := sec.Attribute("id")
		if err != nil || id == nil || !allowed[*id] {
			continue
		}

		name := ""
		if has, heading, err := sec.Has(selMainHeading); err == nil && has {
			if text, err := heading.Text(); err == nil {
				name = strings.TrimSpace(text)
			}
		}
		if name == "" {
			name = Titleize(*id)
		}

		cats = append(cats, Category{ID: *id, Name: name, Element: sec})
	}

	r.logger.Info("main categories resolved", "count", len(cats))
	return cats
}

// SecondLevel lists the clickable sub-groupings within a main category.
// Tiles are not clicked here; each returned node carries the handle the
// third-level lookup will click.
func (r *Resolver) SecondLevel(page *rod.Page, main Category) []Category {
	section, err := page.Element("section#" + main.ID)
	if err != nil {
		r.errlog.Logf("main category %s: entry element not found: %v", main.Name, err)
		return nil
	}

	tiles, err := section.Elements(selCategoryTile)
	if err != nil || len(tiles) == 0 {
		r.errlog.Logf("main category %s: no second-level tiles found", main.Name)
		return nil
	}

	var cats []Category
	for _, tile := range tiles {
		has, div, err := tile.Has(selTileName)
		if err != nil || !has {
			continue
		}
		name, err := div.Attribute("data-e2e")
		if err != nil || name == nil || *name == "" {
			continue
		}
		cats = append(cats, Category{ID: *name, Name: *name, Element: div})
	}

	r.logger.Info("second-level categories resolved", "main", main.Name, "count", len(cats))
	return cats
}

// ThirdLevel clicks a second-level node, waits for the swapped-in menu
// container, and scans it for third-level sections with product counts.
// The click is a client-side content swap, not a full navigation, so main
// category handles stay valid afterwards.
func (r *Resolver) ThirdLevel(page *rod.Page, second Category) []Category {
	if second.Element == nil {
		r.errlog.Logf("second-level category %s: no clickable handle", second.Name)
		return nil
	}

	if err := second.Element.Click(proto.InputMouseButtonLeft, 1); err != nil {
		r.errlog.Logf("second-level category %s: click failed: %v", second.Name, err)
		return nil
	}

	base, err := page.Timeout(r.cfg.Waits.SelectorTimeout).Element(selThirdMenu)
	if err != nil {
		r.errlog.Logf("second-level category %s: menu container never appeared: %v", second.Name, err)
		return nil
	}

	sections, err := base.Elements(selThirdSection)
	if err != nil || len(sections) == 0 {
		r.errlog.Logf("second-level category %s: no third-level sections found", second.Name)
		return nil
	}

	var cats []Category
	for _, sec := range sections {
		id, err := sec.Attribute("id")
		if err != nil || id == nil || *id == "" {
			continue
		}

		name := Titleize(*id)

		count := 0
		if has, grid, err := sec.Has(selProductGrid); err == nil && has {
			if items, err := grid.Elements(selProductItem); err == nil {
				count = len(items)
			}
		}

		cats = append(cats, Category{
			ID:           *id,
			Name:         name,
			Path:         second.Name + "/" + name,
			ProductCount: count,
			Element:      sec,
		})
	}

	r.logger.Info("third-level categories resolved", "second", second.Name, "count", len(cats))
	return cats
}
