// Package detect — candidate strategies.
// Each strategy is one way of locating navigation on a page. The Detector
// runs them in priority order and stops at the first one that is done.
package detect

import (
	"sort"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/navpipe/core"
	"github.com/sirupsen/logrus"
)

// Thresholds used by the locator and the fallback strategies.
const (
	minSelectorAnchors  = 3
	minContainerAnchors = 5
	minHeaderAnchors    = 3
	minDensityAnchors   = 3
	minLinkDensity      = 0.05
)

const (
	containerSelector = "div, nav, section, aside"
	headerSelector    = `header, .header, #header, [role="banner"]`
	listSelector      = "ul, ol"
)

// Page is one parsed document together with its link resolver.
type Page struct {
	Doc     *goquery.Document
	BaseURL string
	links   *linkResolver
}

// Strategy locates navigation on a page.
type Strategy interface {
	// Name identifies the strategy in logs and results.
	Name() string
	// Try returns the structure it found and whether detection should stop.
	Try(p *Page) (core.Structure, bool)
}

// overrideStrategy uses the first element matching an explicit selector.
// A match is final even when it yields an empty structure.
type overrideStrategy struct {
	sel selector
	ex  *extractor
}

func (s *overrideStrategy) Name() string { return "override" }

func (s *overrideStrategy) Try(p *Page) (core.Structure, bool) {
	match := s.sel.find(p.Doc).First()
	if match.Length() == 0 {
		s.ex.log.WithField("selector", s.sel.expr).Debug("Override selector matched nothing")
		return nil, false
	}
	return s.ex.hierarchy(match, p.links), true
}

// selectorStrategy evaluates the configured selectors in priority order and
// extracts the element with the most anchors for each.
type selectorStrategy struct {
	selectors []selector
	ex        *extractor
}

func (s *selectorStrategy) Name() string { return "selector" }

func (s *selectorStrategy) Try(p *Page) (core.Structure, bool) {
	for _, sel := range s.selectors {
		best, count := mostLinked(sel.find(p.Doc))
		if best == nil {
			continue
		}
		if count < minSelectorAnchors {
			s.ex.log.WithFields(logrus.Fields{
				"selector": sel.expr,
				"anchors":  count,
			}).Debug("Candidate has too few links")
			continue
		}
		if structure := s.ex.hierarchy(best, p.links); len(structure) > 0 {
			s.ex.log.WithField("selector", sel.expr).Debug("Selector matched navigation")
			return structure, true
		}
	}
	return nil, false
}

// mostLinked returns the element of matches with the most descendant
// anchors. Ties go to the first in document order.
func mostLinked(matches *goquery.Selection) (*goquery.Selection, int) {
	var best *goquery.Selection
	bestCount := -1
	matches.Each(func(_ int, el *goquery.Selection) {
		if n := el.Find("a").Length(); n > bestCount {
			best, bestCount = el, n
		}
	})
	return best, bestCount
}

// containerStrategy ranks generic containers by anchor count.
type containerStrategy struct {
	ex *extractor
}

func (s *containerStrategy) Name() string { return "container" }

func (s *containerStrategy) Try(p *Page) (core.Structure, bool) {
	type ranked struct {
		sel   *goquery.Selection
		links int
	}
	var containers []ranked
	p.Doc.Find(containerSelector).Each(func(_ int, el *goquery.Selection) {
		containers = append(containers, ranked{sel: el, links: el.Find("a").Length()})
	})
	sort.SliceStable(containers, func(i, j int) bool {
		return containers[i].links > containers[j].links
	})

	for _, c := range containers {
		if c.links < minContainerAnchors {
			break
		}
		var structure core.Structure
		if c.sel.Find(listSelector).Length() > 0 {
			structure = s.ex.hierarchy(c.sel, p.links)
		} else {
			structure = s.ex.flat(c.sel.Find("a"), p.links)
		}
		if len(structure) > 0 {
			return structure, true
		}
	}
	return nil, false
}

// headerStrategy looks for links in header-like regions.
type headerStrategy struct {
	ex *extractor
}

func (s *headerStrategy) Name() string { return "header" }

func (s *headerStrategy) Try(p *Page) (core.Structure, bool) {
	var found core.Structure
	p.Doc.Find(headerSelector).EachWithBreak(func(_ int, el *goquery.Selection) bool {
		anchors := el.Find("a")
		if anchors.Length() < minHeaderAnchors {
			return true
		}
		found = s.ex.flat(anchors, p.links)
		return len(found) == 0
	})
	return found, len(found) > 0
}

// densityStrategy looks for containers where links make up a large share
// of the visible text.
type densityStrategy struct {
	ex *extractor
}

func (s *densityStrategy) Name() string { return "density" }

func (s *densityStrategy) Try(p *Page) (core.Structure, bool) {
	var found core.Structure
	p.Doc.Find(containerSelector).EachWithBreak(func(_ int, el *goquery.Selection) bool {
		anchors := el.Find("a")
		if anchors.Length() < minDensityAnchors || linkDensity(el, anchors.Length()) <= minLinkDensity {
			return true
		}
		found = s.ex.flat(anchors, p.links)
		return len(found) == 0
	})
	return found, len(found) > 0
}

// linkDensity is the number of anchors per visible text character.
func linkDensity(el *goquery.Selection, anchors int) float64 {
	chars := utf8.RuneCountInString(visibleText(el))
	if chars == 0 {
		return 0
	}
	return float64(anchors) / float64(chars)
}
