// Package detect — compiled selectors.
// CSS selectors are compiled with cascadia; expressions starting with "/" or
// "(" are XPath and evaluated with htmlquery.
package detect

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/net/html"
)

type selector struct {
	expr string
	css  cascadia.Selector
	xp   *xpath.Expr
}

func isXPath(expr string) bool {
	return strings.HasPrefix(expr, "/") || strings.HasPrefix(expr, "(")
}

func compileSelector(expr string) (selector, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return selector{}, fmt.Errorf("empty selector")
	}
	if isXPath(expr) {
		xp, err := xpath.Compile(expr)
		if err != nil {
			return selector{}, fmt.Errorf("compiling xpath %q: %w", expr, err)
		}
		return selector{expr: expr, xp: xp}, nil
	}
	css, err := cascadia.Compile(expr)
	if err != nil {
		return selector{}, fmt.Errorf("compiling selector %q: %w", expr, err)
	}
	return selector{expr: expr, css: css}, nil
}

// find returns all elements matching s in document order.
func (s selector) find(doc *goquery.Document) *goquery.Selection {
	if s.xp == nil {
		return doc.FindMatcher(s.css)
	}

	var elems []*html.Node
	for _, root := range doc.Nodes {
		for _, n := range htmlquery.QuerySelectorAll(root, s.xp) {
			if n.Type == html.ElementNode {
				elems = append(elems, n)
			}
		}
	}
	return doc.FindNodes(elems...)
}

// compileSelectors compiles exprs, dropping (and logging) the ones that fail.
func (d *Detector) compileSelectors(exprs []string) []selector {
	compiled := make([]selector, 0, len(exprs))
	for _, expr := range exprs {
		sel, err := compileSelector(expr)
		if err != nil {
			d.log.WithError(err).Warn("Skipping invalid selector")
			continue
		}
		compiled = append(compiled, sel)
	}
	return compiled
}
