package menu

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titler = cases.Title(language.AmericanEnglish)

// Titleize derives a display name from a section identifier:
// "at-home-coffee" becomes "At Home Coffee". A heading element's literal
// text is preferred over this derivation when one is present.
func Titleize(id string) string {
	return strings.TrimSpace(titler.String(strings.ReplaceAll(id, "-", " ")))
}

// NameFromURL derives a product display name from its URL, used when the
// listing markup carries neither a name attribute nor an accessible-text
// span. The slug immediately after the "product" path segment is used;
// failing that, the last segment.
func NameFromURL(rawURL string) string {
	path := rawURL
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	segs := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	slug := ""
	for i, seg := range segs {
		if seg == "product" && i+1 < len(segs) {
			slug = segs[i+1]
			break
		}
	}
	if slug == "" && len(segs) > 0 {
		slug = segs[len(segs)-1]
	}
	return Titleize(slug)
}
