package depgraph

import (
	"errors"
	"fmt"
	"slices"

	"github.com/matzehuels/relayout/pkg/core/rules"
)

// ErrCycle is returned by [Graph.Sort] when the rules of the sorted axis form
// a cycle. The container's constraints are unsatisfiable; callers must not
// continue with a partial order.
var ErrCycle = errors.New("circular dependencies cannot exist in a relative layout")

// CycleError reports the keys of the nodes that could not be ordered.
// It unwraps to [ErrCycle].
type CycleError struct {
	Verbs []rules.Verb // Axis filter that was being sorted
	Keys  []int        // Keys of unordered nodes, in insertion order (0 for unkeyed)
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: unresolved nodes %v", ErrCycle, e.Keys)
}

// Unwrap returns ErrCycle.
func (e *CycleError) Unwrap() error { return ErrCycle }

// Item is an element that participates in the graph. Key returns the stable
// identifier (0 when the item cannot be referenced) and Rule returns the
// resolved slot value for a verb.
type Item interface {
	Key() int
	Rule(v rules.Verb) int
}

// Edge is a "must be positioned before" relation: From cites To, so To is
// ordered first.
type Edge struct {
	From int
	To   int
	Verb rules.Verb
}

type node struct {
	item Item

	// dependents are nodes citing this node, in discovery order.
	dependents   []*node
	dependentSet map[*node]struct{}
	// dependencies are the nodes this node cites, keyed by target key.
	dependencies map[int]*node
}

func (n *node) reset() {
	n.dependents = n.dependents[:0]
	clear(n.dependentSet)
	clear(n.dependencies)
}

// Graph orders the children of one container so that every child comes after
// the siblings it depends on. It is rebuilt for every layout pass.
//
// The zero value is ready to use. Graph is not safe for concurrent use; each
// container owns its own instance.
type Graph struct {
	nodes []*node
	keyed map[int]*node
	pool  []*node
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{keyed: make(map[int]*node)}
}

// Add inserts item. Items with a positive key are indexed so rules can cite
// them; when two items share a key the later one wins the index. Unkeyed
// items are still ordered but can never be depended upon.
func (g *Graph) Add(item Item) {
	if g.keyed == nil {
		g.keyed = make(map[int]*node)
	}
	n := g.acquire(item)
	if k := item.Key(); k > 0 {
		g.keyed[k] = n
	}
	g.nodes = append(g.nodes, n)
}

// Clear releases every node back to the graph's pool and empties the index.
func (g *Graph) Clear() {
	for _, n := range g.nodes {
		g.release(n)
	}
	g.nodes = g.nodes[:0]
	clear(g.keyed)
}

// Len returns the number of items in the graph.
func (g *Graph) Len() int { return len(g.nodes) }

// Lookup returns the item indexed under key.
func (g *Graph) Lookup(key int) (Item, bool) {
	if key <= 0 {
		return nil, false
	}
	n, ok := g.keyed[key]
	if !ok {
		return nil, false
	}
	return n.item, true
}

// Sort returns every item ordered so that no item precedes an item it cites
// through one of verbs. Roots are processed last-in first-out, matching the
// order in which they are discovered.
//
// Returns a *CycleError (wrapping ErrCycle) if some items could not be
// ordered.
func (g *Graph) Sort(verbs []rules.Verb) ([]Item, error) {
	g.build(verbs)

	roots := make([]*node, 0, len(g.nodes))
	for _, n := range g.nodes {
		if len(n.dependencies) == 0 {
			roots = append(roots, n)
		}
	}

	sorted := make([]Item, 0, len(g.nodes))
	done := make(map[*node]bool, len(g.nodes))
	for len(roots) > 0 {
		n := roots[len(roots)-1]
		roots = roots[:len(roots)-1]

		sorted = append(sorted, n.item)
		done[n] = true
		key := n.item.Key()
		for _, dep := range n.dependents {
			delete(dep.dependencies, key)
			if len(dep.dependencies) == 0 {
				roots = append(roots, dep)
			}
		}
	}

	if len(sorted) < len(g.nodes) {
		cerr := &CycleError{Verbs: slices.Clone(verbs)}
		for _, n := range g.nodes {
			if !done[n] {
				cerr.Keys = append(cerr.Keys, n.item.Key())
			}
		}
		return nil, cerr
	}
	return sorted, nil
}

// Edges returns the dependency edges for verbs in node insertion order.
// Duplicate citations of the same target through different verbs are
// reported once per verb.
func (g *Graph) Edges(verbs []rules.Verb) []Edge {
	var edges []Edge
	for _, n := range g.nodes {
		for _, v := range verbs {
			if target := g.dependency(n, v); target != nil {
				edges = append(edges, Edge{From: n.item.Key(), To: target.item.Key(), Verb: v})
			}
		}
	}
	return edges
}

// Related returns the item that the rule value target resolves to for verb,
// skipping items that are not visible by following their own rule for the
// same verb. Dangling targets and self-referencing chains resolve to no item.
func (g *Graph) Related(target int, v rules.Verb, visible func(Item) bool) (Item, bool) {
	n, ok := g.keyed[target]
	if target <= 0 || !ok {
		return nil, false
	}
	for steps := 0; !visible(n.item); steps++ {
		next, ok := g.keyed[n.item.Rule(v)]
		if !ok || next == n || steps >= len(g.nodes) {
			return nil, false
		}
		n = next
	}
	return n.item, true
}

// build resets every node's edge sets and records an edge for each verb
// value that names another existing node.
func (g *Graph) build(verbs []rules.Verb) {
	for _, n := range g.nodes {
		n.reset()
	}
	for _, n := range g.nodes {
		for _, v := range verbs {
			dep := g.dependency(n, v)
			if dep == nil {
				continue
			}
			if _, seen := dep.dependentSet[n]; !seen {
				dep.dependentSet[n] = struct{}{}
				dep.dependents = append(dep.dependents, n)
			}
			n.dependencies[n.item.Rule(v)] = dep
		}
	}
}

func (g *Graph) dependency(n *node, v rules.Verb) *node {
	key := n.item.Rule(v)
	if key <= 0 {
		return nil
	}
	dep, ok := g.keyed[key]
	if !ok || dep == n {
		return nil
	}
	return dep
}

func (g *Graph) acquire(item Item) *node {
	if last := len(g.pool) - 1; last >= 0 {
		n := g.pool[last]
		g.pool = g.pool[:last]
		n.item = item
		return n
	}
	return &node{
		item:         item,
		dependentSet: make(map[*node]struct{}),
		dependencies: make(map[int]*node),
	}
}

func (g *Graph) release(n *node) {
	n.item = nil
	n.reset()
	g.pool = append(g.pool, n)
}
