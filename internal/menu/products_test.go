package menu

import (
	"reflect"
	"testing"
)

const gridHTML = `<section class="pb4 lg-pb6" id="cold-brew">
  <h2>Cold Brew</h2>
  <ul class="grid grid--compactGutter">
    <li class="gridItem">
      <a class="prodTile" href="/menu/product/cold-brew/iced" data-e2e="Cold Brew"></a>
    </li>
    <li class="gridItem">
      <a class="block linkOverlay__primary" href="/menu/product/nitro-cold-brew/iced">
        <span class="hiddenVisually">Nitro Cold Brew</span>
      </a>
    </li>
    <li class="gridItem">
      <a class="prodTile" href="/menu/product/salted-caramel-cream-cold-brew/iced"></a>
    </li>
    <li class="gridItem">
      <div>no anchor here</div>
    </li>
  </ul>
</section>`

func TestParseProductGrid(t *testing.T) {
	refs, err := ParseProductGrid(gridHTML, "Cold Coffee/Cold Brew", "https://example.com")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if len(refs) != 3 {
		t.Fatalf("expected 3 products, got %d", len(refs))
	}

	// Name attribute wins.
	if refs[0].Name != "Cold Brew" {
		t.Errorf("refs[0].Name = %q, want %q", refs[0].Name, "Cold Brew")
	}
	if refs[0].URL != "https://example.com/menu/product/cold-brew/iced" {
		t.Errorf("refs[0].URL = %q", refs[0].URL)
	}

	// Hidden accessible-text span is the second choice.
	if refs[1].Name != "Nitro Cold Brew" {
		t.Errorf("refs[1].Name = %q, want %q", refs[1].Name, "Nitro Cold Brew")
	}

	// URL slug derivation is last.
	if refs[2].Name != "Salted Caramel Cream Cold Brew" {
		t.Errorf("refs[2].Name = %q, want %q", refs[2].Name, "Salted Caramel Cream Cold Brew")
	}

	for i, ref := range refs {
		if ref.Category != "Cold Coffee/Cold Brew" {
			t.Errorf("refs[%d].Category = %q", i, ref.Category)
		}
	}
}

func TestParseProductGridIdempotent(t *testing.T) {
	first, err := ParseProductGrid(gridHTML, "Cold Coffee/Cold Brew", "https://example.com")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	second, err := ParseProductGrid(gridHTML, "Cold Coffee/Cold Brew", "https://example.com")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated parse of unchanged markup returned different results")
	}
}

func TestParseProductGridEmpty(t *testing.T) {
	// A section without a grid is a legitimate "no products" state.
	refs, err := ParseProductGrid(`<section id="merchandise"><h2>Merch</h2></section>`, "X/Y", "https://example.com")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(refs) != 0 {
		t.Fatalf("expected no products, got %d", len(refs))
	}

	// So is a grid with no items.
	refs, err = ParseProductGrid(`<ul class="grid grid--compactGutter"></ul>`, "X/Y", "https://example.com")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(refs) != 0 {
		t.Fatalf("expected no products, got %d", len(refs))
	}
}
