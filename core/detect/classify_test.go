package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLikelyCategory(t *testing.T) {
	tests := []struct {
		name string
		html string
		want bool
	}{
		{name: "keyword", html: `<a href="/s">Getting Started</a>`, want: true},
		{name: "keyword case insensitive", html: `<a href="/s">API OVERVIEW</a>`, want: true},
		{name: "keyword substring", html: `<a href="/s">Chapters</a>`, want: true},
		{name: "heading parent", html: `<h3><a href="/s">Install</a></h3>`, want: true},
		{name: "heading grandparent only", html: `<h3><span><a href="/s">Install</a></span></h3>`, want: false},
		{name: "bold style", html: `<a href="/s" style="font-weight: 700">Install</a>`, want: true},
		{name: "bold keyword style", html: `<a href="/s" style="font: bold 12px serif">Install</a>`, want: true},
		{name: "uppercase style", html: `<a href="/s" style="text-transform: uppercase">Install</a>`, want: true},
		{name: "uppercase style without space", html: `<a href="/s" style="text-transform:uppercase">Install</a>`, want: false},
		{name: "heading class", html: `<a href="/s" class="nav-link section-title">Install</a>`, want: true},
		{name: "partial class", html: `<a href="/s" class="subtitle">Install</a>`, want: false},
		{name: "plain leaf", html: `<a href="/s">Install</a>`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := docFromHTML(t, "<html><body>"+tt.html+"</body></html>")
			a := doc.Find("a").First()
			assert.Equal(t, tt.want, isLikelyCategory(visibleText(a), a))
		})
	}
}
