package extract

import (
	"testing"

	"menuscrape/internal/types"
)

func TestReadCaloriesPrimary(t *testing.T) {
	html := `<div class="auxiliaryProductInfoFont___x1">
		<span data-e2e="calories">200 calories</span>
	</div>
	<span data-e2e="calories">999 calories</span>`

	got, ok := ReadCalories(html)
	if !ok {
		t.Fatal("expected calories, got none")
	}
	if got != "200 calories" {
		t.Errorf("got %q, want %q", got, "200 calories")
	}
}

func TestReadCaloriesSecondary(t *testing.T) {
	html := `<div><span data-e2e="calories">15 calories</span></div>`

	got, ok := ReadCalories(html)
	if !ok {
		t.Fatal("expected calories, got none")
	}
	if got != "15 calories" {
		t.Errorf("got %q, want %q", got, "15 calories")
	}
}

func TestReadCaloriesXPathFallback(t *testing.T) {
	// No data attribute anywhere; only a labelled sibling pair.
	html := `<div><div>Calories</div><div>310 Cal</div></div>`

	got, ok := ReadCalories(html)
	if !ok {
		t.Fatal("expected calories via sibling fallback, got none")
	}
	if got != "310 Cal" {
		t.Errorf("got %q, want %q", got, "310 Cal")
	}
}

func TestReadCaloriesAbsent(t *testing.T) {
	if got, ok := ReadCalories(`<div><p>no nutrition here</p></div>`); ok {
		t.Errorf("expected no calories, got %q", got)
	}
}

func TestParseCartItems(t *testing.T) {
	html := `<div data-e2e="cart-container">
	  <div data-e2e="cart-item">
	    <div data-e2e="option-price-line"><p>Grande · 16 fl oz</p></div>
	    <span data-e2e="cart-item-price">$5.45</span>
	  </div>
	  <div data-e2e="cart-item">
	    <div data-e2e="cart-item-size">Venti</div>
	    <div class="price__total"><span>$5.95</span></div>
	  </div>
	</div>`

	lines, err := ParseCartItems(html)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	if lines[0].SizeText != "Grande · 16 fl oz" || lines[0].Price != "$5.45" {
		t.Errorf("lines[0] = %+v", lines[0])
	}
	if lines[1].SizeText != "Venti" || lines[1].Price != "$5.95" {
		t.Errorf("lines[1] = %+v", lines[1])
	}
}

func TestParseCartItemsAlternateShape(t *testing.T) {
	html := `<div class="cart-item__row">
	  <div data-e2e="cart-item-size">Tall</div>
	  <div class="price"><span>$4.75</span></div>
	</div>`

	lines, err := ParseCartItems(html)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].SizeText != "Tall" || lines[0].Price != "$4.75" {
		t.Errorf("lines[0] = %+v", lines[0])
	}
}

func TestParseCartItemsEmpty(t *testing.T) {
	lines, err := ParseCartItems(`<div><h1>Start your next order</h1></div>`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(lines))
	}
}

func TestMatchVariant(t *testing.T) {
	keys := []string{"Tall", "Grande", "Venti"}

	cases := []struct {
		sizeText string
		want     string
	}{
		{"Grande · 16 fl oz", "Grande"},
		{"venti, iced", "Venti"},
		{"TALL", "Tall"},
		{"Trenta", types.SizeStandard},
		{"", types.SizeStandard},
	}

	for _, c := range cases {
		if got := MatchVariant(c.sizeText, keys, types.SizeStandard); got != c.want {
			t.Errorf("MatchVariant(%q) = %q, want %q", c.sizeText, got, c.want)
		}
	}
}

func TestMatchVariantFirstWins(t *testing.T) {
	// Ambiguous text matches the earliest discovered key.
	keys := []string{"Cold Brew", "Brew"}
	if got := MatchVariant("cold brew with foam", keys, types.SizeStandard); got != "Cold Brew" {
		t.Errorf("got %q, want %q", got, "Cold Brew")
	}
}

func TestPairCartLines(t *testing.T) {
	ref := types.ProductRef{
		Name:     "Cold Brew",
		URL:      "https://example.com/menu/product/cold-brew/iced",
		Category: "Cold Coffee/Cold Brew",
	}
	calories := map[string]string{"Tall": "5 calories", "Grande": "5 calories"}
	order := []string{"Tall", "Grande"}
	lines := []CartLine{
		{SizeText: "Tall · 12 fl oz", Price: "$4.45"},
		{SizeText: "Grande · 16 fl oz", Price: "$4.95"},
		{SizeText: "unrecognized", Price: "$1.00"},
	}

	recs := PairCartLines(ref, lines, calories, order)
	if len(recs) != len(lines) {
		t.Fatalf("expected one record per cart line, got %d for %d lines", len(recs), len(lines))
	}

	// Calories come from the captured map, never the cart page.
	if recs[0].Size != "Tall" || recs[0].Calories != "5 calories" || recs[0].Price != "$4.45" {
		t.Errorf("recs[0] = %+v", recs[0])
	}
	if recs[1].Size != "Grande" || recs[1].Price != "$4.95" {
		t.Errorf("recs[1] = %+v", recs[1])
	}

	// Unmatched size text falls back to Standard with unknown calories.
	if recs[2].Size != types.SizeStandard || recs[2].Calories != types.CaloriesUnknown {
		t.Errorf("recs[2] = %+v", recs[2])
	}

	for i, rec := range recs {
		if rec.Category != ref.Category || rec.URL != ref.URL || rec.ProductName != ref.Name {
			t.Errorf("recs[%d] identity fields = %+v", i, rec)
		}
		if rec.Price == "" {
			t.Errorf("recs[%d] has empty price", i)
		}
	}
}
