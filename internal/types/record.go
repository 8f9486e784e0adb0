package types

// Well-known field values used across the extraction pipeline.
const (
	// PriceSoldOut marks a record whose price could not be obtained because
	// the product is unavailable for purchase.
	PriceSoldOut = "soldout"

	// CaloriesUnknown marks a record whose nutrition panel never resolved.
	CaloriesUnknown = "N/A"

	// SizeStandard is the implicit variant for products without a size
	// control, and the fallback label when cart matching fails.
	SizeStandard = "Standard"
)

// ProductRef points at a single product discovered on a category listing
// page. It is immutable once created and consumed exactly once by the
// extractor.
type ProductRef struct {
	Name     string
	URL      string
	Category string // "Second Level/Third Level" path
}

// SizeVariant is one purchasable option of a product. Key is the stable
// identifier used to select the option (select value or label attribute);
// Label is the visible text, which may be empty for label-based controls.
type SizeVariant struct {
	Key   string
	Label string
}

// Record is one output row: a (product, size) pair with its nutrition and
// price data. Records are append-only; Price is either currency text or
// PriceSoldOut, never empty.
type Record struct {
	Category    string
	ProductName string
	Size        string
	Calories    string
	Price       string
	URL         string
}

// Header returns the output column names in row order.
func Header() []string {
	return []string{"category", "product_name", "size", "calories", "price", "url"}
}

// Row returns the record's values in Header order.
func (r Record) Row() []string {
	return []string{r.Category, r.ProductName, r.Size, r.Calories, r.Price, r.URL}
}

// Fields returns the record as a field map, for document-style sinks.
func (r Record) Fields() map[string]any {
	return map[string]any{
		"category":     r.Category,
		"product_name": r.ProductName,
		"size":         r.Size,
		"calories":     r.Calories,
		"price":        r.Price,
		"url":          r.URL,
	}
}
