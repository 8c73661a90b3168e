// Package detect — category classification.
// Decides whether a flat link is a section heading rather than a leaf page.
package detect

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/atom"
)

// categoryKeywords mark titles that usually name a section.
var categoryKeywords = []string{
	"category", "section", "chapter", "guide",
	"overview", "introduction", "getting started",
}

// headingClasses are class names that style a link as a heading.
var headingClasses = map[string]bool{
	"heading":       true,
	"header":        true,
	"title":         true,
	"category":      true,
	"section-title": true,
}

// isLikelyCategory reports whether the link a with the given title looks like
// a category heading. The first matching rule wins.
func isLikelyCategory(title string, a *goquery.Selection) bool {
	lower := strings.ToLower(title)
	for _, kw := range categoryKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}

	if len(a.Nodes) > 0 && a.Nodes[0].Parent != nil {
		switch a.Nodes[0].Parent.DataAtom {
		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
			return true
		}
	}

	// Raw substring checks on the style attribute.
	style, _ := a.Attr("style")
	if strings.Contains(style, "bold") || strings.Contains(style, "font-weight") ||
		strings.Contains(style, "text-transform: uppercase") {
		return true
	}

	class, _ := a.Attr("class")
	for _, c := range strings.Fields(class) {
		if headingClasses[c] {
			return true
		}
	}
	return false
}
