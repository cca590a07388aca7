// Package depgraph orders the children of a relative container along one
// axis.
//
// # Overview
//
// Each child cites siblings through relation rules (see package rules). For
// one axis at a time, [Graph.Sort] turns the citations into edges and returns
// a topological order in which every child follows the siblings it cites.
// Horizontal and vertical rules are independent, so a container sorts twice,
// once with [rules.Horizontal] and once with [rules.Vertical].
//
// # Lifecycle
//
// The graph is rebuilt for every layout pass: call [Graph.Clear], then
// [Graph.Add] for each child, then [Graph.Sort] per axis. Nodes are recycled
// through a free-list private to the graph, so repeated passes do not
// allocate; the recycling is invisible to callers.
//
// # Failure modes
//
// A rule that names a missing child, or a child that names itself, adds no
// edge. A cycle among the remaining edges makes Sort return a [*CycleError],
// which wraps [ErrCycle]. There is no partial result.
//
// # Example
//
//	g := depgraph.New()
//	for _, c := range children {
//	    g.Add(c)
//	}
//	order, err := g.Sort(rules.Horizontal)
//	if errors.Is(err, depgraph.ErrCycle) {
//	    // report the broken layout description
//	}
package depgraph
