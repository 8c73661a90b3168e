// Package render provides output renderers for detected outlines.
// This file implements the Markdown renderer, which renders the outline as
// HTML lists and converts them with the normalizer.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/navpipe/core"
)

// MarkdownRenderer writes the outline as a nested Markdown list of links
// under a heading.
type MarkdownRenderer struct {
	html       *HTMLRenderer
	normalizer core.Normalizer
}

// NewMarkdownRenderer creates a MarkdownRenderer that converts through normalizer.
func NewMarkdownRenderer(normalizer core.Normalizer) *MarkdownRenderer {
	return &MarkdownRenderer{
		html:       NewHTMLRenderer(),
		normalizer: normalizer,
	}
}

// Render returns the outline as Markdown.
func (r *MarkdownRenderer) Render(outline core.Structure, meta core.OutlineMetadata) ([]byte, error) {
	var b strings.Builder

	title := meta.Title
	if title == "" {
		title = meta.URL
	}
	if title != "" {
		fmt.Fprintf(&b, "# %s\n\n", title)
	}
	if meta.URL != "" {
		fmt.Fprintf(&b, "Source: <%s>\n\n", meta.URL)
	}

	if len(outline) == 0 {
		b.WriteString("_No navigation detected._\n")
		return []byte(b.String()), nil
	}

	htmlOutline, err := r.html.Render(outline, core.OutlineMetadata{})
	if err != nil {
		return nil, err
	}
	list, err := r.normalizer.Normalize(string(htmlOutline))
	if err != nil {
		return nil, fmt.Errorf("converting outline: %w", err)
	}
	b.WriteString(strings.TrimSpace(list))
	b.WriteString("\n")
	return []byte(b.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
