// Package render — HTML renderer.
// Builds a standalone <nav> with nested lists, the same markup shape the
// detector reads, so an outline can be re-detected from its own rendering.
package render

import (
	"bytes"
	"fmt"

	"github.com/gaurav-prasanna/navpipe/core"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLRenderer renders an outline as nested HTML lists.
type HTMLRenderer struct{}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// Render returns a <nav> element containing the outline.
func (r *HTMLRenderer) Render(outline core.Structure, meta core.OutlineMetadata) ([]byte, error) {
	nav := element(atom.Nav)
	if meta.Title != "" {
		nav.Attr = append(nav.Attr, html.Attribute{Key: "aria-label", Val: meta.Title})
	}
	if len(outline) > 0 {
		nav.AppendChild(listNode(outline))
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, nav); err != nil {
		return nil, fmt.Errorf("rendering HTML: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}

// listNode builds a <ul> for one level of the outline.
func listNode(level core.Structure) *html.Node {
	ul := element(atom.Ul)
	for _, n := range level {
		li := element(atom.Li)
		a := element(atom.A)
		a.Attr = append(a.Attr, html.Attribute{Key: "href", Val: n.URL})
		if n.IsCategory {
			a.Attr = append(a.Attr, html.Attribute{Key: "class", Val: "category"})
		}
		a.AppendChild(&html.Node{Type: html.TextNode, Data: n.Title})
		li.AppendChild(a)
		if len(n.Children) > 0 {
			li.AppendChild(listNode(n.Children))
		}
		ul.AppendChild(li)
	}
	return ul
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}
