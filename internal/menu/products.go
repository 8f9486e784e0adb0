package menu

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"menuscrape/internal/browser"
	"menuscrape/internal/config"
	"menuscrape/internal/storage"
	"menuscrape/internal/types"
)

// The product grid shows two alternate anchor shapes depending on tile
// rendering; both resolve to the same product pages.
var productAnchorSelectors = []string{
	`a.prodTile[href^="/menu/product/"]`,
	`a.block.linkOverlay__primary[href^="/menu/product/"]`,
}

// Enumerator lists the products of a resolved third-level category.
type Enumerator struct {
	cfg    *config.Config
	logger *slog.Logger
	errlog *storage.ErrorLog
}

// NewEnumerator creates an Enumerator.
func NewEnumerator(cfg *config.Config, logger *slog.Logger, errlog *storage.ErrorLog) *Enumerator {
	return &Enumerator{
		cfg:    cfg,
		logger: logger.With("component", "enumerator"),
		errlog: errlog,
	}
}

// ListProducts scrolls the category section into view (item grids lazy
// render), settles, then parses the section's subtree for product links.
// An empty grid is a legitimate "no products" state, not a failure.
func (e *Enumerator) ListProducts(cat Category) []types.ProductRef {
	if cat.Element == nil {
		e.errlog.Logf("category %s: no live section handle", cat.Path)
		return nil
	}

	if err := cat.Element.ScrollIntoView(); err != nil {
		e.errlog.Logf("category %s: scroll failed: %v", cat.Path, err)
		return nil
	}
	browser.Settle(e.cfg.Waits.ScrollSettle, 0)

	html, err := cat.Element.HTML()
	if err != nil {
		e.errlog.Logf("category %s: reading section markup failed: %v", cat.Path, err)
		return nil
	}

	refs, err := ParseProductGrid(html, cat.Path, e.cfg.Site.BaseURL)
	if err != nil {
		e.errlog.Logf("category %s: parsing product grid failed: %v", cat.Path, err)
		return nil
	}

	e.logger.Info("products enumerated", "category", cat.Path, "count", len(refs))
	return refs
}

// ParseProductGrid extracts product references from a category section's
// markup. Name resolution order: explicit name attribute, hidden
// accessible-text span, then a titleized form of the URL slug.
func ParseProductGrid(html, categoryPath, baseURL string) ([]types.ProductRef, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	grid := doc.Find(selProductGrid).First()
	if grid.Length() == 0 {
		return nil, nil
	}

	var refs []types.ProductRef
	grid.Find(selProductItem).Each(func(_ int, item *goquery.Selection) {
		var link *goquery.Selection
		for _, sel := range productAnchorSelectors {
			if found := item.Find(sel).First(); found.Length() > 0 {
				link = found
				break
			}
		}
		if link == nil {
			return
		}

		href, ok := link.Attr("href")
		if !ok || href == "" {
			return
		}

		name := strings.TrimSpace(link.AttrOr("data-e2e", ""))
		if name == "" {
			name = strings.TrimSpace(link.Find("span.hiddenVisually").First().Text())
		}
		if name == "" {
			name = NameFromURL(href)
		}

		refs = append(refs, types.ProductRef{
			Name:     name,
			URL:      baseURL + href,
			Category: categoryPath,
		})
	})

	return refs, nil
}
