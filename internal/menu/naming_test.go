package menu

import "testing"

func TestTitleize(t *testing.T) {
	cases := []struct {
		id   string
		want string
	}{
		{"cold-brew", "Cold Brew"},
		{"at-home-coffee", "At Home Coffee"},
		{"drinks", "Drinks"},
		{"nitro-cold-brew", "Nitro Cold Brew"},
		{"", ""},
	}

	for _, c := range cases {
		if got := Titleize(c.id); got != c.want {
			t.Errorf("Titleize(%q) = %q, want %q", c.id, got, c.want)
		}
	}
}

func TestNameFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"/menu/product/cold-brew/iced", "Cold Brew"},
		{"/menu/product/vanilla-sweet-cream-cold-brew/iced?parent=%2Fdrinks", "Vanilla Sweet Cream Cold Brew"},
		{"https://www.starbucks.com/menu/product/iced-caffe-latte/iced", "Iced Caffe Latte"},
		{"/some/other/path", "Path"},
	}

	for _, c := range cases {
		if got := NameFromURL(c.url); got != c.want {
			t.Errorf("NameFromURL(%q) = %q, want %q", c.url, got, c.want)
		}
	}
}
