// Package core defines the outline types and pipeline interfaces for navpipe.
// Each stage of the pipeline is a clean, testable interface.
package core

import "context"

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string // final URL after redirects, used as the base URL
	StatusCode int
	HTML       string
}

// Node is one detected navigation link.
type Node struct {
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	IsCategory bool      `json:"is_category,omitempty"`
	Children   Structure `json:"children,omitempty"` // nil for leaves
}

// Structure is an ordered sequence of sibling nodes at one hierarchy level.
// Titles are display data only; siblings may share a title.
type Structure []*Node

// Entry is a Node rewritten with its depth and ancestor path, as produced by
// Structure.Flatten.
type Entry struct {
	Title      string   `json:"title"`
	URL        string   `json:"url"`
	Level      int      `json:"level"` // 1-based
	Path       []string `json:"path"`  // ancestor titles including self
	IsCategory bool     `json:"is_category"`
}

// OutlineMetadata describes the page an outline was detected on.
type OutlineMetadata struct {
	URL         string `json:"url"`
	Domain      string `json:"domain"`
	Title       string `json:"title"`
	Strategy    string `json:"strategy,omitempty"`
	DetectedAt  string `json:"detected_at"` // ISO8601
	Fingerprint string `json:"fingerprint"`
}

// OutlineJSON is the complete JSON output for a single page.
type OutlineJSON struct {
	Metadata  OutlineMetadata `json:"metadata"`
	Depth     int             `json:"depth"`
	Count     int             `json:"count"`
	Structure Structure       `json:"structure"`
	Entries   []Entry         `json:"entries"`
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Detector recovers the navigation structure of a single page.
// An empty Structure means no navigation was detected; it is not an error.
type Detector interface {
	Detect(html string, baseURL string) Structure
}

// Normalizer converts HTML into Markdown.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Renderer converts a detected outline into a final output format.
type Renderer interface {
	Render(outline Structure, meta OutlineMetadata) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
