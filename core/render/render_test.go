package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/navpipe/core"
	"github.com/gaurav-prasanna/navpipe/core/detect"
	"github.com/gaurav-prasanna/navpipe/core/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOutline() core.Structure {
	return core.Structure{
		{Title: "A", URL: "https://x.test/a"},
		{Title: "B", URL: "https://x.test/b", Children: core.Structure{
			{Title: "B1", URL: "https://x.test/b/1"},
		}},
		{Title: "Guides", URL: "https://x.test/guides", IsCategory: true},
	}
}

func sampleMeta() core.OutlineMetadata {
	return core.OutlineMetadata{
		URL:        "https://x.test/",
		Domain:     "x.test",
		Title:      "X Docs",
		DetectedAt: "2026-01-02T03:04:05Z",
	}
}

func TestRenderers_Extensions(t *testing.T) {
	tests := []struct {
		r    core.Renderer
		want string
	}{
		{NewJSONRenderer(), ".json"},
		{NewHTMLRenderer(), ".html"},
		{NewMarkdownRenderer(normalize.New()), ".md"},
		{NewPDFRenderer(), ".pdf"},
		{NewTextRenderer(), ".txt"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.r.Extension())
	}
}

func TestJSONRenderer(t *testing.T) {
	outline := sampleOutline()
	data, err := NewJSONRenderer().Render(outline, sampleMeta())
	require.NoError(t, err)

	var got core.OutlineJSON
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, 2, got.Depth)
	assert.Equal(t, 4, got.Count)
	assert.Equal(t, outline.Fingerprint(), got.Metadata.Fingerprint)
	assert.Equal(t, "X Docs", got.Metadata.Title)
	require.Len(t, got.Entries, 4)
	assert.Equal(t, []string{"B", "B1"}, got.Entries[2].Path)
	require.Len(t, got.Structure, 3)
	assert.Equal(t, "B1", got.Structure[1].Children[0].Title)
	assert.True(t, got.Structure[2].IsCategory)
}

func TestJSONRenderer_EmptyOutline(t *testing.T) {
	data, err := NewJSONRenderer().Render(nil, sampleMeta())
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"structure": []`)
	assert.Contains(t, s, `"entries": []`)
	assert.Contains(t, s, `"depth": 0`)
	assert.NotContains(t, s, "null")
}

func TestHTMLRenderer(t *testing.T) {
	data, err := NewHTMLRenderer().Render(sampleOutline(), sampleMeta())
	require.NoError(t, err)

	s := string(data)
	assert.True(t, strings.HasPrefix(s, `<nav aria-label="X Docs"><ul>`))
	assert.Contains(t, s, `<li><a href="https://x.test/b">B</a><ul><li><a href="https://x.test/b/1">B1</a></li></ul></li>`)
	assert.Contains(t, s, `<a href="https://x.test/guides" class="category">Guides</a>`)
}

func TestHTMLRenderer_EscapesText(t *testing.T) {
	outline := core.Structure{{Title: `<b>"Q&A"</b>`, URL: `https://x.test/?a=1&b="2"`}}
	data, err := NewHTMLRenderer().Render(outline, core.OutlineMetadata{})
	require.NoError(t, err)

	s := string(data)
	assert.NotContains(t, s, "<b>")
	assert.Contains(t, s, "&lt;b&gt;")
	assert.Contains(t, s, "&amp;b=")
}

func TestHTMLRenderer_RoundTrip(t *testing.T) {
	outline := core.Structure{
		{Title: "A", URL: "https://x.test/a"},
		{Title: "B", URL: "https://x.test/b", Children: core.Structure{
			{Title: "B1", URL: "https://x.test/b/1"},
		}},
		{Title: "C", URL: "https://x.test/c"},
	}
	data, err := NewHTMLRenderer().Render(outline, core.OutlineMetadata{})
	require.NoError(t, err)

	got := detect.New().Detect(string(data), "https://x.test/")
	assert.Equal(t, outline.Fingerprint(), got.Fingerprint())
}

func TestMarkdownRenderer(t *testing.T) {
	data, err := NewMarkdownRenderer(normalize.New()).Render(sampleOutline(), sampleMeta())
	require.NoError(t, err)

	s := string(data)
	assert.True(t, strings.HasPrefix(s, "# X Docs\n"))
	assert.Contains(t, s, "[A](https://x.test/a)")
	assert.Contains(t, s, "[B1](https://x.test/b/1)")
	assert.Less(t, strings.Index(s, "[B]("), strings.Index(s, "[B1]("))
}

func TestMarkdownRenderer_EmptyOutline(t *testing.T) {
	data, err := NewMarkdownRenderer(normalize.New()).Render(core.Structure{}, sampleMeta())
	require.NoError(t, err)
	assert.Contains(t, string(data), "No navigation detected")
}

type failingNormalizer struct{}

func (failingNormalizer) Normalize(string) (string, error) {
	return "", assert.AnError
}

func TestMarkdownRenderer_NormalizerError(t *testing.T) {
	_, err := NewMarkdownRenderer(failingNormalizer{}).Render(sampleOutline(), sampleMeta())
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestPDFRenderer(t *testing.T) {
	for name, outline := range map[string]core.Structure{
		"outline": sampleOutline(),
		"empty":   nil,
	} {
		t.Run(name, func(t *testing.T) {
			data, err := NewPDFRenderer().Render(outline, sampleMeta())
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
		})
	}
}

func TestPDFRenderer_DeepOutline(t *testing.T) {
	var outline core.Structure
	level := &outline
	for i := 0; i < 20; i++ {
		n := &core.Node{Title: "Level", URL: "https://x.test/deep"}
		*level = core.Structure{n}
		level = &n.Children
	}

	data, err := NewPDFRenderer().Render(outline, sampleMeta())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestTextRenderer(t *testing.T) {
	data, err := NewTextRenderer().Render(sampleOutline(), sampleMeta())
	require.NoError(t, err)

	want := "- A\thttps://x.test/a\n" +
		"- B\thttps://x.test/b\n" +
		"  - B1\thttps://x.test/b/1\n" +
		"+ Guides\thttps://x.test/guides\n"
	assert.Equal(t, want, string(data))
}
