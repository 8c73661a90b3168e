// Package detect recovers the navigation structure of a web page.
//
// A Detector runs an ordered chain of strategies over a parsed page:
//  1. an explicit override selector, when configured
//  2. the configured selector list, scored by link count
//  3. container ranking by link count
//  4. header-like regions
//  5. containers with a high link density
//
// The first strategy that finds something wins. Finding nothing is a valid
// outcome and yields an empty structure, never an error.
package detect

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/navpipe/core"
	"github.com/gaurav-prasanna/navpipe/core/extract"
	"github.com/gobwas/glob"
	"github.com/sirupsen/logrus"
)

// Result is the outcome of a single detection.
type Result struct {
	Structure core.Structure
	Strategy  string // name of the winning strategy, "" when nothing was found
	Title     string // page <title>
}

// Detector holds immutable configuration and is safe for concurrent use.
type Detector struct {
	strategies []Strategy
	exclude    []glob.Glob
	parser     *extract.HTMLExtractor
	log        *logrus.Logger
}

// New creates a Detector. Without options it uses the built-in selectors.
func New(opts ...Option) *Detector {
	cfg := config{
		selectors:  DefaultSelectors(),
		maxDepth:   DefaultMaxDepth,
		duplicates: KeepAll,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.log == nil {
		cfg.log = discardLogger()
	}

	d := &Detector{
		parser: extract.New(),
		log:    cfg.log,
	}
	d.exclude = d.compileExclude(cfg.exclude)

	ex := &extractor{
		maxDepth:   cfg.maxDepth,
		duplicates: cfg.duplicates,
		log:        cfg.log,
	}
	if cfg.override != "" {
		if sel, err := compileSelector(cfg.override); err != nil {
			d.log.WithError(err).Warn("Ignoring invalid override selector")
		} else {
			d.strategies = append(d.strategies, &overrideStrategy{sel: sel, ex: ex})
		}
	}
	d.strategies = append(d.strategies,
		&selectorStrategy{selectors: d.compileSelectors(cfg.selectors), ex: ex},
		&containerStrategy{ex: ex},
		&headerStrategy{ex: ex},
		&densityStrategy{ex: ex},
	)
	return d
}

// Strategies returns the names of the strategies in the order they run.
func (d *Detector) Strategies() []string {
	names := make([]string, len(d.strategies))
	for i, s := range d.strategies {
		names[i] = s.Name()
	}
	return names
}

// Detect returns the navigation structure of html. baseURL resolves
// relative links.
func (d *Detector) Detect(html string, baseURL string) core.Structure {
	return d.Analyze(html, baseURL).Structure
}

// Analyze is Detect with the winning strategy and page title attached.
func (d *Detector) Analyze(html string, baseURL string) Result {
	if strings.TrimSpace(html) == "" {
		return Result{Structure: core.Structure{}}
	}
	doc, err := d.parser.Document(html)
	if err != nil {
		d.log.WithError(err).Debug("Unparseable document")
		return Result{Structure: core.Structure{}}
	}
	return d.AnalyzeDocument(doc, baseURL)
}

// AnalyzeDocument runs the strategy chain over an already parsed document.
func (d *Detector) AnalyzeDocument(doc *goquery.Document, baseURL string) Result {
	res := Result{Structure: core.Structure{}, Title: extract.Title(doc)}
	page := &Page{
		Doc:     doc,
		BaseURL: baseURL,
		links:   newLinkResolver(baseURL, d.exclude),
	}

	for _, s := range d.strategies {
		structure, done := s.Try(page)
		if !done {
			continue
		}
		d.log.WithFields(logrus.Fields{
			"strategy": s.Name(),
			"nodes":    structure.Count(),
			"base_url": baseURL,
		}).Debug("Navigation detected")
		if structure != nil {
			res.Structure = structure
		}
		res.Strategy = s.Name()
		return res
	}

	d.log.WithField("base_url", baseURL).Debug("No navigation detected")
	return res
}
