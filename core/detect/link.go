// Package detect — link normalization.
// Resolves anchor hrefs against the page's base URL and rejects links that
// cannot be navigated to.
package detect

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gobwas/glob"
	whatwgUrl "github.com/nlnwa/whatwg-url/url"
)

var urlParser = whatwgUrl.NewParser(whatwgUrl.WithPercentEncodeSinglePercentSign())

// nonNavigationalSchemes are href prefixes that never lead to a page.
var nonNavigationalSchemes = []string{"javascript:", "mailto:", "tel:", "data:"}

// linkResolver resolves hrefs for a single page.
type linkResolver struct {
	base    string
	exclude []glob.Glob
}

func newLinkResolver(baseURL string, exclude []glob.Glob) *linkResolver {
	return &linkResolver{base: strings.TrimSpace(baseURL), exclude: exclude}
}

// resolve returns the absolute URL for href, or "" when the link is empty,
// fragment-only, uses a non-navigational scheme or matches an exclude pattern.
func (r *linkResolver) resolve(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	lower := strings.ToLower(href)
	for _, scheme := range nonNavigationalSchemes {
		if strings.HasPrefix(lower, scheme) {
			return ""
		}
	}

	u, err := urlParser.ParseRef(r.base, href)
	if err != nil {
		return ""
	}
	resolved := u.Href(false)
	if resolved == "" || strings.HasSuffix(resolved, "#") || resolved == r.base+"#" {
		return ""
	}

	for _, g := range r.exclude {
		if g.Match(resolved) {
			return ""
		}
	}
	return resolved
}

// anchor returns the title and absolute URL of a, and false when a is not a
// usable navigation link.
func (r *linkResolver) anchor(a *goquery.Selection) (title, url string, ok bool) {
	href, exists := a.Attr("href")
	if !exists || strings.TrimSpace(href) == "" {
		return "", "", false
	}
	title = visibleText(a)
	if title == "" {
		return "", "", false
	}
	url = r.resolve(href)
	if url == "" {
		return "", "", false
	}
	return title, url, true
}

// visibleText returns the text of s with whitespace runs collapsed.
func visibleText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}

// compileExclude compiles glob patterns, dropping (and logging) the ones that fail.
func (d *Detector) compileExclude(patterns []string) []glob.Glob {
	var globs []glob.Glob
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p == "" {
			continue
		}
		g, err := glob.Compile(p)
		if err != nil {
			d.log.WithError(err).WithField("pattern", p).Warn("Skipping invalid exclude pattern")
			continue
		}
		globs = append(globs, g)
	}
	return globs
}
