// Package detect — flat link extraction.
// Used by the fallback strategies for containers without list markup.
package detect

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/navpipe/core"
)

// flat turns anchors into a single level of siblings. It never nests.
func (ex *extractor) flat(anchors *goquery.Selection, links *linkResolver) core.Structure {
	root := &core.Node{Children: core.Structure{}}
	level := newLevelBuilder(ex.duplicates, ex.log)

	anchors.Each(func(_ int, a *goquery.Selection) {
		title, url, ok := links.anchor(a)
		if !ok {
			return
		}
		level.add(root, &core.Node{
			Title:      title,
			URL:        url,
			IsCategory: isLikelyCategory(title, a),
		})
	})

	return root.Children
}
