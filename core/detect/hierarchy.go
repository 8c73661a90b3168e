// Package detect — hierarchical extraction.
// Walks the list markup of a navigation container into an ordered tree.
// Traversal uses an explicit work stack with a depth budget and a visited
// set, so malformed markup can never recurse without bound.
package detect

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/navpipe/core"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// extractor builds structures from containers and anchor sets.
type extractor struct {
	maxDepth   int
	duplicates DuplicatePolicy
	log        *logrus.Logger
}

// listFrame is one pending list item on the work stack.
type listFrame struct {
	item   *html.Node
	parent *core.Node
	depth  int // 1 for top-level items
}

// hierarchy extracts the nested structure of container's own list markup.
func (ex *extractor) hierarchy(container *goquery.Selection, links *linkResolver) core.Structure {
	root := &core.Node{Children: core.Structure{}}
	if container.Length() == 0 {
		return root.Children
	}
	container = container.First()

	level := newLevelBuilder(ex.duplicates, ex.log)
	visited := make(map[*html.Node]bool)
	stack := pushItems(nil, listItems(container), root, 1)

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[f.item] {
			continue
		}
		visited[f.item] = true

		item := container.FindNodes(f.item)
		if item.Length() == 0 {
			continue
		}
		children := listItems(item)

		title, url, ok := "", "", false
		if anchor := ownAnchor(item); anchor.Length() > 0 {
			title, url, ok = links.anchor(anchor)
		}
		if !ok {
			// Unusable label: its sub-items move up to the current level.
			stack = pushItems(stack, children, f.parent, f.depth)
			continue
		}

		node := &core.Node{Title: title, URL: url}
		nested := item.Find("ul, ol").Length() > 0
		if nested {
			node.Children = core.Structure{}
		}
		if !level.add(f.parent, node) || !nested {
			continue
		}
		if f.depth >= ex.maxDepth {
			ex.log.WithFields(logrus.Fields{
				"title": title,
				"depth": f.depth,
			}).Debug("Depth budget reached, submenu not expanded")
			continue
		}
		stack = pushItems(stack, children, node, f.depth+1)
	}

	return root.Children
}

// pushItems pushes items in reverse so they are popped in document order.
func pushItems(stack []listFrame, items []*html.Node, parent *core.Node, depth int) []listFrame {
	for i := len(items) - 1; i >= 0; i-- {
		stack = append(stack, listFrame{item: items[i], parent: parent, depth: depth})
	}
	return stack
}

// listItems returns the li elements under scope that belong directly to it,
// i.e. have no other li between themselves and scope.
func listItems(scope *goquery.Selection) []*html.Node {
	if scope.Length() == 0 {
		return nil
	}
	limit := scope.Nodes[0]
	var items []*html.Node
	scope.Find("li").Each(func(_ int, li *goquery.Selection) {
		if ownerItem(li.Nodes[0], limit) == nil {
			items = append(items, li.Nodes[0])
		}
	})
	return items
}

// ownerItem returns the closest li ancestor of n below limit, or nil.
func ownerItem(n, limit *html.Node) *html.Node {
	for p := n.Parent; p != nil && p != limit; p = p.Parent {
		if p.DataAtom == atom.Li {
			return p
		}
	}
	return nil
}

// ownAnchor returns the first anchor of item that is not inside one of its
// nested lists.
func ownAnchor(item *goquery.Selection) *goquery.Selection {
	limit := item.Nodes[0]
	return item.Find("a").FilterFunction(func(_ int, a *goquery.Selection) bool {
		for p := a.Nodes[0].Parent; p != nil && p != limit; p = p.Parent {
			if p.DataAtom == atom.Ul || p.DataAtom == atom.Ol {
				return false
			}
		}
		return true
	}).First()
}

// levelBuilder appends nodes to their parents, applying the duplicate policy
// per sibling level.
type levelBuilder struct {
	policy DuplicatePolicy
	log    *logrus.Logger
	titles map[*core.Node]map[string]int
}

func newLevelBuilder(policy DuplicatePolicy, log *logrus.Logger) *levelBuilder {
	return &levelBuilder{
		policy: policy,
		log:    log,
		titles: make(map[*core.Node]map[string]int),
	}
}

// add attaches n to parent and reports whether n ended up in the structure.
func (b *levelBuilder) add(parent, n *core.Node) bool {
	if b.policy == KeepAll {
		parent.Children = append(parent.Children, n)
		return true
	}

	seen := b.titles[parent]
	if seen == nil {
		seen = make(map[string]int)
		b.titles[parent] = seen
	}
	i, dup := seen[n.Title]
	if !dup {
		seen[n.Title] = len(parent.Children)
		parent.Children = append(parent.Children, n)
		return true
	}

	b.log.WithFields(logrus.Fields{
		"title":  n.Title,
		"policy": b.policy.String(),
	}).Debug("Duplicate sibling title")
	if b.policy == KeepFirst {
		return false
	}
	parent.Children[i] = n
	return true
}
