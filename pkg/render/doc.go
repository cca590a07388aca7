// Package render turns built and solved layouts into visual outputs.
//
// # Overview
//
// Two renderers live in subpackages:
//
//   - [nodelink] draws the rule dependency graph of a container per axis
//     with Graphviz
//   - [frames] draws a solved [graph.Result] as SVG boxes or as a text grid
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg := frames.SVG(result)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [nodelink]: github.com/matzehuels/relayout/pkg/render/nodelink
// [frames]: github.com/matzehuels/relayout/pkg/render/frames
// [graph.Result]: github.com/matzehuels/relayout/pkg/graph.Result
package render
