package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/navpipe/core"
)

// TextRenderer writes one line per flattened entry, indented two spaces per
// level below the first.
type TextRenderer struct{}

// NewTextRenderer creates a TextRenderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// Render returns the flattened outline as plain text.
func (r *TextRenderer) Render(outline core.Structure, _ core.OutlineMetadata) ([]byte, error) {
	var b strings.Builder
	for _, e := range outline.Flatten() {
		marker := "-"
		if e.IsCategory {
			marker = "+"
		}
		fmt.Fprintf(&b, "%s%s %s\t%s\n", strings.Repeat("  ", e.Level-1), marker, e.Title, e.URL)
	}
	return []byte(b.String()), nil
}

// Extension returns the file extension for text output.
func (r *TextRenderer) Extension() string {
	return ".txt"
}
