package core

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// WalkFunc is called for every node in pre-order. path holds the ancestor
// titles including n and must not be retained; Walk reuses its backing array.
// Returning false skips n's children.
type WalkFunc func(n *Node, level int, path []string) bool

// Walk visits s in pre-order: parent before children, siblings in order.
func (s Structure) Walk(fn WalkFunc) {
	s.walk(fn, 1, nil)
}

func (s Structure) walk(fn WalkFunc, level int, path []string) {
	for _, n := range s {
		p := append(path, n.Title)
		if !fn(n, level, p) {
			continue
		}
		if len(n.Children) > 0 {
			n.Children.walk(fn, level+1, p)
		}
	}
}

// Depth returns the length of the longest title-to-leaf chain.
// An empty structure has depth 0.
func (s Structure) Depth() int {
	if len(s) == 0 {
		return 0
	}
	deepest := 1
	for _, n := range s {
		if d := 1 + n.Children.Depth(); d > deepest {
			deepest = d
		}
	}
	return deepest
}

// Count returns the total number of nodes across all levels.
func (s Structure) Count() int {
	count := 0
	s.Walk(func(*Node, int, []string) bool {
		count++
		return true
	})
	return count
}

// Flatten converts s into an ordered list of entries with level and path.
// Every entry owns its Path slice.
func (s Structure) Flatten() []Entry {
	entries := make([]Entry, 0, s.Count())
	s.Walk(func(n *Node, level int, path []string) bool {
		entries = append(entries, Entry{
			Title:      n.Title,
			URL:        n.URL,
			Level:      level,
			Path:       append([]string(nil), path...),
			IsCategory: n.IsCategory,
		})
		return true
	})
	return entries
}

// Fingerprint returns a stable hash of the titles, URLs, category flags and
// nesting of s. Two structurally identical outlines share a fingerprint.
func (s Structure) Fingerprint() string {
	h := xxhash.New()
	s.Walk(func(n *Node, level int, _ []string) bool {
		h.WriteString(strconv.Itoa(level))
		h.WriteString("\x00")
		h.WriteString(n.Title)
		h.WriteString("\x00")
		h.WriteString(n.URL)
		if n.IsCategory {
			h.WriteString("\x00c")
		}
		h.WriteString("\n")
		return true
	})
	return fmt.Sprintf("%016x", h.Sum64())
}
