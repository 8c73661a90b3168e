// Package render — JSON renderer.
// Emits the nested outline together with its flattened entries, depth and
// node count, so consumers can pick whichever shape they need.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/navpipe/core"
)

// JSONRenderer produces structured JSON output from an outline.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render converts the outline and metadata into indented JSON.
func (r *JSONRenderer) Render(outline core.Structure, meta core.OutlineMetadata) ([]byte, error) {
	data, err := json.MarshalIndent(NewOutlineJSON(outline, meta), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// NewOutlineJSON builds the JSON document for outline. Empty outlines encode
// as empty arrays rather than null.
func NewOutlineJSON(outline core.Structure, meta core.OutlineMetadata) core.OutlineJSON {
	if outline == nil {
		outline = core.Structure{}
	}
	if meta.Fingerprint == "" {
		meta.Fingerprint = outline.Fingerprint()
	}
	return core.OutlineJSON{
		Metadata:  meta,
		Depth:     outline.Depth(),
		Count:     outline.Count(),
		Structure: outline,
		Entries:   outline.Flatten(),
	}
}
