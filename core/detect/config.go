// Package detect — detector configuration.
// Holds the built-in selector list, the functional options accepted by New,
// and the loader for selector files.
package detect

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultMaxDepth is the nesting budget used when none is configured.
const DefaultMaxDepth = 32

// defaultSelectors are tried in order. Explicit table-of-contents markers
// come before generic navigation containers.
var defaultSelectors = []string{
	".toc",
	"#toc",
	".table-of-contents",
	`[role="doc-toc"]`,
	".doc-menu",
	".sidebar",
	"#sidebar",
	".navigation",
	"ul.navigation",
	".site-menu",
	".main-menu",
	"header .menu",
	".menu",
	".navbar",
	".nav",
	"nav",
}

// DefaultSelectors returns a copy of the built-in selector list.
func DefaultSelectors() []string {
	return slices.Clone(defaultSelectors)
}

// DuplicatePolicy decides what happens when two siblings share a title.
type DuplicatePolicy int

const (
	// KeepAll keeps every sibling in discovery order.
	KeepAll DuplicatePolicy = iota
	// KeepFirst drops later siblings whose title was already seen.
	KeepFirst
	// KeepLast replaces the earlier sibling in its original position.
	KeepLast
)

func (p DuplicatePolicy) String() string {
	switch p {
	case KeepFirst:
		return "keep-first"
	case KeepLast:
		return "keep-last"
	default:
		return "keep-all"
	}
}

// ParseDuplicatePolicy parses the names produced by DuplicatePolicy.String.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "keep-all":
		return KeepAll, nil
	case "keep-first":
		return KeepFirst, nil
	case "keep-last":
		return KeepLast, nil
	default:
		return KeepAll, fmt.Errorf("unknown duplicate policy %q (want keep-all, keep-first or keep-last)", s)
	}
}

type config struct {
	selectors  []string
	override   string
	exclude    []string
	maxDepth   int
	duplicates DuplicatePolicy
	log        *logrus.Logger
}

// Option configures a Detector.
type Option func(*config)

// WithSelectors replaces the built-in selector list. An empty list keeps the defaults.
func WithSelectors(selectors []string) Option {
	return func(c *config) {
		if len(selectors) > 0 {
			c.selectors = slices.Clone(selectors)
		}
	}
}

// WithOverride sets a selector that is tried before anything else.
// When it matches, its element is used as-is, without scoring.
func WithOverride(selector string) Option {
	return func(c *config) {
		c.override = strings.TrimSpace(selector)
	}
}

// WithExclude skips links whose absolute URL matches any of the glob patterns.
func WithExclude(patterns ...string) Option {
	return func(c *config) {
		c.exclude = append(c.exclude, patterns...)
	}
}

// WithMaxDepth bounds how many list levels are expanded. Values below 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		if depth > 0 {
			c.maxDepth = depth
		}
	}
}

// WithDuplicatePolicy sets how siblings with identical titles are resolved.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(c *config) {
		c.duplicates = p
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(log *logrus.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

// LoadSelectors reads a replacement selector list from path. JSON arrays are
// accepted everywhere; .yaml and .yml files are decoded as YAML sequences.
// Any failure falls back to the built-in list and is logged as a warning.
func LoadSelectors(path string, log *logrus.Logger) []string {
	if path == "" {
		return DefaultSelectors()
	}
	if log == nil {
		log = discardLogger()
	}

	selectors, err := readSelectors(path)
	if err != nil {
		log.WithError(err).WithField("path", path).Warn("Error loading selectors, using defaults")
		return DefaultSelectors()
	}
	return selectors
}

func readSelectors(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading selector file: %w", err)
	}

	var raw []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding selector file: %w", err)
	}

	selectors := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			selectors = append(selectors, s)
		}
	}
	if len(selectors) == 0 {
		return nil, fmt.Errorf("selector file contains no selectors")
	}
	return selectors, nil
}

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
