// Package render — PDF renderer.
// Lays the outline out as an indented list using gofpdf. Every entry is a
// clickable link to its URL and gets a bookmark at its level, so PDF viewers
// show the navigation tree in their sidebar.
package render

import (
	"bytes"
	"fmt"

	"github.com/gaurav-prasanna/navpipe/core"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfIndent    = 6.0 // mm per level
	pdfMaxIndent = 12  // levels beyond this share the same indent
	pdfLineH     = 5.5
)

// PDFRenderer renders an outline as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts the outline into PDF bytes.
func (r *PDFRenderer) Render(outline core.Structure, meta core.OutlineMetadata) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(meta.Title, true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Title from metadata.
	if meta.Title != "" {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 8, tr(meta.Title), "", "L", false)
		pdf.Ln(4)
	}

	// Source URL.
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, tr("Source: "+meta.URL), "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	if len(outline) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 5, "No navigation detected.", "", "L", false)
	}

	left, _, _, _ := pdf.GetMargins()
	outline.Walk(func(n *core.Node, level int, _ []string) bool {
		indent := level - 1
		if indent > pdfMaxIndent {
			indent = pdfMaxIndent
		}

		style := ""
		if n.IsCategory {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)

		pdf.Bookmark(n.Title, level-1, -1)
		pdf.SetX(left + float64(indent)*pdfIndent)
		pdf.SetTextColor(20, 60, 160)
		pdf.CellFormat(0, pdfLineH, tr("• "+n.Title), "", 1, "L", false, 0, n.URL)
		pdf.SetTextColor(0, 0, 0)
		return true
	})

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}
