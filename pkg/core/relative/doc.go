// Package relative implements a relative layout container.
//
// Each child carries a table of relation rules ("right of #3", "align
// parent bottom", "center vertical") and the container turns those rules
// into one rectangle per child.
//
// # Passes
//
// [Layout.Measure] runs in phases:
//
//  1. Rules are resolved for the text direction and children are sorted
//     once per axis so that every anchor is placed before its dependents.
//  2. Horizontal: each child's left and right edges are pinned from its
//     horizontal rules, the child is measured for width and the free edge
//     is derived from the measured width.
//  3. Vertical: the same for top and bottom, with a final measurement on
//     both axes. A wrap-content size and the bounds of all children are
//     accumulated here.
//  4. Adjustment: a wrap-content size is finalised and children that were
//     centred or aligned to the far edge are moved. Gravity shifts the
//     block of children, and right-to-left placements are mirrored back.
//
// A rule cycle aborts the pass with an error wrapping depgraph.ErrCycle
// and leaves the container in [StateIdle].
//
// # Nesting
//
// A [Nested] view lets a Layout be the child of another Layout. Every
// container owns its dependency graph and pass state, so nested measure
// calls are safe on one goroutine.
//
// # Example
//
//	l := relative.New(relative.WithPadding(relative.EdgeAll(8)))
//	title := relative.NewChild(1, relative.NewBox(120, 20))
//	body := relative.NewChild(2, relative.NewBox(120, 60))
//	body.Params.Rules.Add(rules.Below, 1)
//	l.AddChild(title)
//	l.AddChild(body)
//	res, err := l.Solve(measure.Exact(320), measure.UpTo(480))
package relative
