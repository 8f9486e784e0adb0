package extract

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"menuscrape/internal/browser"
	"menuscrape/internal/config"
	"menuscrape/internal/storage"
	"menuscrape/internal/types"
)

// Interaction selectors on the product and cart pages.
const (
	selSizeSelect   = `select[data-e2e="size-selector"]`
	selSizeForm     = `form[data-e2e="size-selector"]`
	selAddToOrder   = `button[data-e2e="add-to-order-button"]`
	selOverlayClose = `button[aria-label="Close"]`
	selCartBox      = `div[data-e2e="cart-container"]`
	selDecrement    = `button[data-e2e="decreaseQuantityButton"]`
	selDecrementAlt = `button[aria-label*="Decrease amount"]`

	reSoldOut   = `/sold out/i`
	reAddButton = `/add to order/i`
	reCartReady = `/your order/i`
	reCartEmpty = `/start your next order/i`
)

// Fixed post-interaction settles, matching the storefront's animation
// timings rather than anything configurable.
const (
	addConfirmSettle   = 2 * time.Second
	overlayCloseSettle = 1 * time.Second
	decrementSettle    = 1 * time.Second
)

// Extractor walks a single product page: discovers size variants, reads
// per-variant nutrition, and resolves prices through the cart for in-stock
// products. Sold-out products skip the cart round trip and get the
// sold-out price sentinel.
type Extractor struct {
	cfg     *config.Config
	logger  *slog.Logger
	errlog  *storage.ErrorLog
	session *browser.Session
}

// NewExtractor creates an Extractor bound to the shared browser session.
func NewExtractor(cfg *config.Config, logger *slog.Logger, errlog *storage.ErrorLog, session *browser.Session) *Extractor {
	return &Extractor{
		cfg:     cfg,
		logger:  logger.With("component", "extractor"),
		errlog:  errlog,
		session: session,
	}
}

// Product extracts all (size, price) records for one product. The product
// is inspected on its own short-lived page so the listing page's DOM stays
// stable; that page is always closed before returning.
func (e *Extractor) Product(ref types.ProductRef) ([]types.Record, error) {
	page, err := e.session.NewProductPage(ref.URL)
	if err != nil {
		return nil, &types.ExtractError{Product: ref.Name, URL: ref.URL, Err: err}
	}
	defer page.Close()

	if _, err := page.Timeout(e.cfg.Waits.SelectorTimeout).Element(selAddToOrder); err != nil {
		return nil, &types.ExtractError{Product: ref.Name, URL: ref.URL,
			Err: fmt.Errorf("primary action control never appeared: %w", err)}
	}

	soldOut, _, _ := page.HasR("*", reSoldOut)
	if soldOut {
		e.logger.Info("product sold out", "product", ref.Name)
		return e.soldOutRecords(page, ref), nil
	}

	recs, err := e.inStockRecords(page, ref)
	// The cart holds whatever was added even if price reading failed
	// halfway, so clearing is unconditional for the in-stock branch.
	e.clearCart(page)
	return recs, err
}

// discoverVariants enumerates the product's size options: a single-select
// control first, then a labelled button group, then the implicit standard
// variant. The returned element is the select control when one exists.
func (e *Extractor) discoverVariants(page *rod.Page) ([]types.SizeVariant, *rod.Element, error) {
	if has, selEl, err := page.Has(selSizeSelect); err == nil && has {
		opts, err := selEl.Elements("option")
		if err != nil {
			return nil, nil, fmt.Errorf("enumerate size options: %w", err)
		}
		var variants []types.SizeVariant
		for _, opt := range opts {
			if disabled, _ := opt.Attribute("disabled"); disabled != nil {
				continue
			}
			value, err := opt.Attribute("value")
			if err != nil || value == nil || *value == "" {
				continue
			}
			label, _ := opt.Text()
			variants = append(variants, types.SizeVariant{Key: *value, Label: strings.TrimSpace(label)})
		}
		return variants, selEl, nil
	}

	if has, form, err := page.Has(selSizeForm); err == nil && has {
		labels, err := form.Elements("label")
		if err != nil {
			return nil, nil, fmt.Errorf("enumerate size labels: %w", err)
		}
		var variants []types.SizeVariant
		for _, label := range labels {
			key := ""
			if attr, _ := label.Attribute("data-e2e"); attr != nil && *attr != "" {
				key = *attr
			} else if text, err := label.Text(); err == nil {
				if fields := strings.Fields(text); len(fields) > 0 {
					key = fields[0]
				}
			}
			if key == "" {
				continue
			}
			variants = append(variants, types.SizeVariant{Key: key})
		}
		return variants, nil, nil
	}

	return []types.SizeVariant{{Key: types.SizeStandard}}, nil, nil
}

// selectVariant activates one size option: a select-control choice when the
// control exists, otherwise a label click.
func (e *Extractor) selectVariant(page *rod.Page, selEl *rod.Element, v types.SizeVariant) error {
	if selEl != nil {
		return selEl.Select([]string{fmt.Sprintf(`option[value=%q]`, v.Key)}, true, rod.SelectorTypeCSS)
	}

	if has, label, err := page.Has(fmt.Sprintf(`label[data-e2e=%q]`, v.Key)); err == nil && has {
		return label.Click(proto.InputMouseButtonLeft, 1)
	}
	label, err := page.Timeout(e.cfg.Waits.OverlayTimeout).ElementR("label", v.Key)
	if err != nil {
		return fmt.Errorf("size label %q not found: %w", v.Key, err)
	}
	return label.Click(proto.InputMouseButtonLeft, 1)
}

// readCalories snapshots the page and runs the calorie fallback chain.
func (e *Extractor) readCalories(page *rod.Page) string {
	html, err := page.HTML()
	if err != nil {
		return types.CaloriesUnknown
	}
	cal, ok := ReadCalories(html)
	if !ok {
		return types.CaloriesUnknown
	}
	return cal
}

// soldOutRecords walks the variants of an unavailable product. Per-variant
// failures are console-logged and skipped; a discovery failure degrades to
// one standard record so the product still appears in the output.
func (e *Extractor) soldOutRecords(page *rod.Page, ref types.ProductRef) []types.Record {
	variants, selEl, err := e.discoverVariants(page)
	if err != nil {
		e.errlog.Logf("sold-out product %s: variant discovery failed: %v", ref.Name, err)
		return []types.Record{{
			Category:    ref.Category,
			ProductName: ref.Name,
			Size:        types.SizeStandard,
			Calories:    types.CaloriesUnknown,
			Price:       types.PriceSoldOut,
			URL:         ref.URL,
		}}
	}

	var recs []types.Record
	for _, v := range variants {
		if err := e.selectVariant(page, selEl, v); err != nil {
			e.logger.Warn("variant selection failed, skipping", "product", ref.Name, "size", v.Key, "error", err)
			continue
		}
		browser.Settle(e.cfg.Waits.SoldOutSettle, e.cfg.Waits.SettleJitter)

		recs = append(recs, types.Record{
			Category:    ref.Category,
			ProductName: ref.Name,
			Size:        v.Key,
			Calories:    e.readCalories(page),
			Price:       types.PriceSoldOut,
			URL:         ref.URL,
		})
	}
	return recs
}

// inStockRecords selects each variant, captures its calorie text, adds it
// to the order, then resolves prices by inspecting the cart. Calories
// always come from the values captured during selection, never from the
// cart page.
func (e *Extractor) inStockRecords(page *rod.Page, ref types.ProductRef) ([]types.Record, error) {
	variants, selEl, err := e.discoverVariants(page)
	if err != nil {
		return nil, &types.ExtractError{Product: ref.Name, URL: ref.URL, Err: err}
	}

	calories := make(map[string]string, len(variants))
	var order []string // discovery order drives cart matching

	for _, v := range variants {
		if err := e.selectVariant(page, selEl, v); err != nil {
			e.logger.Warn("variant selection failed, skipping", "product", ref.Name, "size", v.Key, "error", err)
			continue
		}
		browser.Settle(e.cfg.Waits.InStockSettle, e.cfg.Waits.SettleJitter)

		calories[v.Key] = e.readCalories(page)
		order = append(order, v.Key)

		if err := e.addToOrder(page); err != nil {
			e.logger.Warn("add to order failed, skipping variant", "product", ref.Name, "size", v.Key, "error", err)
			continue
		}
	}

	return e.cartRecords(page, ref, calories, order)
}

// addToOrder clicks the add control and dismisses the confirmation overlay.
func (e *Extractor) addToOrder(page *rod.Page) error {
	has, btn, err := page.Has(selAddToOrder)
	if err != nil || !has {
		btn, err = page.Timeout(e.cfg.Waits.OverlayTimeout).ElementR("button", reAddButton)
		if err != nil {
			return fmt.Errorf("add-to-order control not found: %w", err)
		}
	}
	if err := btn.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click add-to-order: %w", err)
	}
	browser.Settle(addConfirmSettle, 0)

	if has, closeBtn, err := page.Has(selOverlayClose); err == nil && has {
		if err := closeBtn.Click(proto.InputMouseButtonLeft, 1); err == nil {
			browser.Settle(overlayCloseSettle, 0)
		}
	}
	return nil
}

// cartRecords navigates to the cart and pairs each line item's price with
// the calorie text captured for its matched variant. Line items are
// assumed to correspond to the variants just added; ambiguous size text
// falls back to the standard label.
func (e *Extractor) cartRecords(page *rod.Page, ref types.ProductRef, calories map[string]string, order []string) ([]types.Record, error) {
	if err := page.Timeout(e.cfg.Waits.NavTimeout).Navigate(e.cfg.Site.CartURL); err != nil {
		return nil, &types.ExtractError{Product: ref.Name, URL: ref.URL,
			Err: fmt.Errorf("navigate cart: %w", err)}
	}

	if err := e.waitCartLoaded(page); err != nil {
		return nil, &types.ExtractError{Product: ref.Name, URL: ref.URL, Err: err}
	}
	browser.Settle(e.cfg.Waits.CartSettle, 0)

	html, err := page.HTML()
	if err != nil {
		return nil, &types.ExtractError{Product: ref.Name, URL: ref.URL, Err: err}
	}
	lines, err := ParseCartItems(html)
	if err != nil {
		return nil, &types.ExtractError{Product: ref.Name, URL: ref.URL, Err: err}
	}

	return PairCartLines(ref, lines, calories, order), nil
}

// waitCartLoaded waits for either of the two cart-loaded indicators.
func (e *Extractor) waitCartLoaded(page *rod.Page) error {
	if _, err := page.Timeout(e.cfg.Waits.CartTimeout).ElementR("h1", reCartReady); err == nil {
		return nil
	}
	if _, err := page.Timeout(e.cfg.Waits.CartTimeout).Element(selCartBox); err == nil {
		return nil
	}
	return types.ErrCartNotLoaded
}

// clearCart empties the cart by clicking each visible decrement control
// once. A cart that already reads empty short-circuits. This leaves the
// session's shared state at its baseline for the next product.
func (e *Extractor) clearCart(page *rod.Page) {
	if empty, _, _ := page.HasR("div", reCartEmpty); empty {
		return
	}

	btns, err := page.Elements(selDecrement)
	if err != nil || len(btns) == 0 {
		btns, err = page.Elements(selDecrementAlt)
	}
	if err != nil {
		e.cartFailure(page, fmt.Errorf("locate decrement controls: %w", err))
		return
	}

	for _, btn := range btns {
		if err := btn.Click(proto.InputMouseButtonLeft, 1); err != nil {
			e.cartFailure(page, fmt.Errorf("click decrement control: %w", err))
			return
		}
		browser.Settle(decrementSettle, 0)
	}
}

// cartFailure records the diagnostic and captures the cart page state.
func (e *Extractor) cartFailure(page *rod.Page, err error) {
	e.errlog.Logf("cart cleanup failed: %v", err)
	path := browser.ErrorArtifactPath("cart_error")
	if serr := e.session.ScreenshotPage(page, path); serr != nil {
		e.logger.Warn("cart failure screenshot failed", "error", serr)
	}
}
