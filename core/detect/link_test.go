package detect

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gobwas/glob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestLinkResolver_Resolve(t *testing.T) {
	r := newLinkResolver("https://x.test/docs/", nil)

	tests := []struct {
		name string
		href string
		want string
	}{
		{name: "root relative", href: "/a", want: "https://x.test/a"},
		{name: "document relative", href: "guide", want: "https://x.test/docs/guide"},
		{name: "parent relative", href: "../about", want: "https://x.test/about"},
		{name: "absolute", href: "https://other.test/x", want: "https://other.test/x"},
		{name: "query only", href: "?page=2", want: "https://x.test/docs/?page=2"},
		{name: "surrounding whitespace", href: "  /spaced  ", want: "https://x.test/spaced"},
		{name: "page with fragment", href: "/a#intro", want: "https://x.test/a#intro"},
		{name: "empty", href: "", want: ""},
		{name: "bare fragment", href: "#", want: ""},
		{name: "fragment only", href: "#intro", want: ""},
		{name: "javascript", href: "javascript:void(0)", want: ""},
		{name: "javascript uppercase", href: "JavaScript:open()", want: ""},
		{name: "mailto", href: "mailto:docs@x.test", want: ""},
		{name: "tel", href: "tel:+123", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.resolve(tt.href))
		})
	}
}

func TestLinkResolver_Exclude(t *testing.T) {
	r := newLinkResolver("https://x.test/", []glob.Glob{glob.MustCompile("*/login*")})

	assert.Equal(t, "", r.resolve("/login"))
	assert.Equal(t, "", r.resolve("/account/login?next=/"))
	assert.Equal(t, "https://x.test/docs", r.resolve("/docs"))
}

func TestLinkResolver_Anchor(t *testing.T) {
	doc := docFromHTML(t, `<html><body>
		<a id="ok" href="/a">  Getting
			Started </a>
		<a id="nohref">No href</a>
		<a id="emptyhref" href="  ">Empty</a>
		<a id="notitle" href="/b"><img src="x.png"></a>
		<a id="fragment" href="#top">Top</a>
	</body></html>`)
	r := newLinkResolver("https://x.test/", nil)

	title, url, ok := r.anchor(doc.Find("#ok"))
	require.True(t, ok)
	assert.Equal(t, "Getting Started", title)
	assert.Equal(t, "https://x.test/a", url)

	for _, id := range []string{"#nohref", "#emptyhref", "#notitle", "#fragment"} {
		_, _, ok := r.anchor(doc.Find(id))
		assert.False(t, ok, id)
	}
}
