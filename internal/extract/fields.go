package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"menuscrape/internal/types"
)

// A strategy is one way of locating a field's value in the markup. Chains
// hold strategies in preference order; the first one that yields a
// non-empty value wins. Representing the fallbacks as data keeps markup
// drift a table edit instead of a conditional rewrite.
type strategyKind int

const (
	kindCSS strategyKind = iota
	kindXPath
)

type strategy struct {
	kind  strategyKind
	query string
	attr  string // css only; empty means text content
}

type fieldChain struct {
	field      string
	strategies []strategy
}

// caloriesChain reads the nutrition text on a product page. The XPath leg
// covers markup where the value sits in a sibling of a "Calories" label,
// which a CSS selector cannot address.
var caloriesChain = fieldChain{
	field: "calories",
	strategies: []strategy{
		{kindCSS, `div[class*="auxiliaryProductInfoFont"] span[data-e2e="calories"]`, ""},
		{kindCSS, `span[data-e2e="calories"]`, ""},
		{kindXPath, `//div[contains(normalize-space(.), "Calories")]/following-sibling::div[1]`, ""},
	},
}

// Cart line-item fields.
var (
	cartItemSelectors = []string{
		`div[data-e2e="cart-item"]`,
		`div[class*="cart-item"]`,
	}

	cartSizeChain = fieldChain{
		field: "size",
		strategies: []strategy{
			{kindCSS, `div[data-e2e="option-price-line"] p`, ""},
			{kindCSS, `div[data-e2e="cart-item-size"]`, ""},
		},
	}

	cartPriceChain = fieldChain{
		field: "price",
		strategies: []strategy{
			{kindCSS, `span[data-e2e="cart-item-price"]`, ""},
			{kindCSS, `div[class*="price"] span`, ""},
		},
	}
)

// extract runs the chain against a document or element subtree.
func (c fieldChain) extract(sel *goquery.Selection) (string, bool) {
	for _, s := range c.strategies {
		switch s.kind {
		case kindCSS:
			found := sel.Find(s.query).First()
			if found.Length() == 0 {
				continue
			}
			var val string
			if s.attr == "" {
				val = found.Text()
			} else {
				val = found.AttrOr(s.attr, "")
			}
			if val = strings.TrimSpace(val); val != "" {
				return val, true
			}

		case kindXPath:
			if len(sel.Nodes) == 0 {
				continue
			}
			if val := queryXPath(sel.Nodes[0], s.query); val != "" {
				return val, true
			}
		}
	}
	return "", false
}

// queryXPath evaluates an XPath expression against a parsed subtree.
func queryXPath(root *html.Node, expr string) string {
	nodes, err := htmlquery.QueryAll(root, expr)
	if err != nil || len(nodes) == 0 {
		return ""
	}
	return strings.TrimSpace(htmlquery.InnerText(nodes[0]))
}

// CartLine is one observed cart line item: the size-description fragment
// and the price text.
type CartLine struct {
	SizeText string
	Price    string
}

// ParseCartItems extracts line items from the cart page markup. Both known
// cart-item shapes are tried; an empty cart yields an empty slice.
func ParseCartItems(pageHTML string) ([]CartLine, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, err
	}

	var items *goquery.Selection
	for _, sel := range cartItemSelectors {
		if found := doc.Find(sel); found.Length() > 0 {
			items = found
			break
		}
	}
	if items == nil {
		return nil, nil
	}

	var lines []CartLine
	items.Each(func(_ int, item *goquery.Selection) {
		size, ok := cartSizeChain.extract(item)
		if !ok {
			size = "N/A"
		}
		price, ok := cartPriceChain.extract(item)
		if !ok {
			price = "N/A"
		}
		lines = append(lines, CartLine{SizeText: size, Price: price})
	})

	return lines, nil
}

// ReadCalories runs the calorie chain over product page markup.
func ReadCalories(pageHTML string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return "", false
	}
	return caloriesChain.extract(doc.Selection)
}

// PairCartLines combines observed cart lines with the calorie text captured
// during variant selection. Each line becomes one record; calories always
// come from the captured map, never from the cart page.
func PairCartLines(ref types.ProductRef, lines []CartLine, calories map[string]string, order []string) []types.Record {
	var recs []types.Record
	for _, line := range lines {
		key := MatchVariant(line.SizeText, order, types.SizeStandard)
		cal, ok := calories[key]
		if !ok {
			cal = types.CaloriesUnknown
		}
		recs = append(recs, types.Record{
			Category:    ref.Category,
			ProductName: ref.Name,
			Size:        key,
			Calories:    cal,
			Price:       line.Price,
			URL:         ref.URL,
		})
	}
	return recs
}

// MatchVariant matches a cart line's size text against the variant keys
// recorded during selection, case-insensitively as a substring, in the
// order the variants were discovered. First match wins; no match falls
// back to the given default.
func MatchVariant(sizeText string, keys []string, fallback string) string {
	lower := strings.ToLower(sizeText)
	for _, key := range keys {
		if key == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(key)) {
			return key
		}
	}
	return fallback
}
