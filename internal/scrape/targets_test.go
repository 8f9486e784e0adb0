package scrape

import (
	"reflect"
	"testing"

	"menuscrape/internal/menu"
)

func testCategories() []menu.Category {
	return []menu.Category{
		{ID: "cold-brew", Name: "Cold Brew", Path: "Cold Coffee/Cold Brew", ProductCount: 3},
		{ID: "nitro-cold-brew", Name: "Nitro Cold Brew", Path: "Cold Coffee/Nitro Cold Brew", ProductCount: 2},
		{ID: "iced-coffee", Name: "Iced Coffee", Path: "Cold Coffee/Iced Coffee", ProductCount: 0},
	}
}

func TestFindByName(t *testing.T) {
	cats := testCategories()

	c, ok := FindByName(cats, "Cold Brew")
	if !ok || c.ID != "cold-brew" {
		t.Errorf("FindByName = %+v, %v", c, ok)
	}

	if _, ok := FindByName(cats, "Hot Coffee"); ok {
		t.Error("expected lookup miss for absent name")
	}
}

func TestFindByID(t *testing.T) {
	cats := testCategories()

	c, ok := FindByID(cats, "nitro-cold-brew")
	if !ok || c.Name != "Nitro Cold Brew" {
		t.Errorf("FindByID = %+v, %v", c, ok)
	}

	if _, ok := FindByID(cats, "missing"); ok {
		t.Error("expected lookup miss for absent id")
	}
}

func TestFilterBySubstring(t *testing.T) {
	cats := testCategories()

	got := FilterBySubstring(cats, "Cold Brew")
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}

	if got := FilterBySubstring(cats, "Frappuccino"); len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
}

func TestNames(t *testing.T) {
	want := []string{"Cold Brew", "Nitro Cold Brew", "Iced Coffee"}
	if got := Names(testCategories()); !reflect.DeepEqual(got, want) {
		t.Errorf("Names = %v, want %v", got, want)
	}
}

func TestTotalProducts(t *testing.T) {
	// Zero-count categories contribute nothing.
	if got := TotalProducts(testCategories()); got != 5 {
		t.Errorf("TotalProducts = %d, want 5", got)
	}
	if got := TotalProducts(nil); got != 0 {
		t.Errorf("TotalProducts(nil) = %d, want 0", got)
	}
}
