// Package extract prepares raw page markup for navigation detection.
// It parses the HTML and removes elements that never render as text, so
// titles and link density are computed over what a reader actually sees.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// invisibleSelectors are elements removed before detection.
var invisibleSelectors = []string{
	"script", "style", "noscript", "template",
}

// HTMLExtractor parses markup into a cleaned document.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Document parses html and strips invisible elements.
func (e *HTMLExtractor) Document(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	for _, sel := range invisibleSelectors {
		doc.Find(sel).Remove()
	}
	return doc, nil
}

// Title returns the trimmed content of the first <title> element.
func Title(doc *goquery.Document) string {
	return strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
}
