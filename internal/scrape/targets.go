package scrape

import (
	"strings"

	"menuscrape/internal/menu"
)

// FindByName returns the category whose display name matches exactly.
func FindByName(cats []menu.Category, name string) (menu.Category, bool) {
	for _, c := range cats {
		if c.Name == name {
			return c, true
		}
	}
	return menu.Category{}, false
}

// FindByID returns the category with the given section identifier.
func FindByID(cats []menu.Category, id string) (menu.Category, bool) {
	for _, c := range cats {
		if c.ID == id {
			return c, true
		}
	}
	return menu.Category{}, false
}

// FilterBySubstring keeps categories whose names contain the substring.
func FilterBySubstring(cats []menu.Category, substr string) []menu.Category {
	var out []menu.Category
	for _, c := range cats {
		if strings.Contains(c.Name, substr) {
			out = append(out, c)
		}
	}
	return out
}

// Names lists the display names, for lookup-miss reporting.
func Names(cats []menu.Category) []string {
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.Name
	}
	return names
}

// TotalProducts sums the product counts of the given categories. The sum
// only drives progress reporting; per-category counts are re-checked at
// extraction time.
func TotalProducts(cats []menu.Category) int {
	total := 0
	for _, c := range cats {
		if c.ProductCount > 0 {
			total += c.ProductCount
		}
	}
	return total
}
