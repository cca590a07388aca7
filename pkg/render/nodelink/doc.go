// Package nodelink renders the rule dependencies of a container as a
// node-link diagram.
//
// Each child is a box; each sibling rule on the chosen axis is an arrow from
// the dependent child to its anchor, labelled with the verb. Parent-relative
// rules have no sibling and are listed in detailed labels instead.
//
//	dot, err := nodelink.ToDOT(built, graph.AxisHorizontal, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// Gone children are drawn dashed and grey. Rule targets that name no child
// are drawn as dotted "missing" nodes so dangling rules stay visible.
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PNG conversion requires librsvg (rsvg-convert).
package nodelink
