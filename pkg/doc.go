// Package pkg provides the libraries behind relayout, a relative layout
// constraint solver.
//
// # Overview
//
// A relative container positions its children by rules naming siblings or
// the container itself: "below title", "align_parent_end", "center_vertical".
// Relayout resolves those rules, orders the children so every child is
// placed after the siblings it depends on, and measures and positions them
// in a horizontal pass followed by a vertical pass.
//
// # Architecture
//
//	TOML / JSON layout document
//	         ↓
//	    [graph] (parse, validate, build containers)
//	         ↓
//	    [core/relative] (rule resolution + two-pass layout)
//	         ↓
//	    [render/frames], [render/nodelink] (SVG, PNG, text, DOT)
//
// # Main Packages
//
// ## Core Domain Logic
//
// [core/rules] - The rule verbs, rule tables, and the resolution of logical
// start/end rules into absolute left/right rules for a layout direction.
//
// [core/depgraph] - The per-axis dependency graph over children and its
// topological sort. A rule cycle is reported as [depgraph.ErrCycle].
//
// [core/measure] - Measure specs and the derivation of a child's spec from
// its container's spec and its declared size.
//
// [core/relative] - The relative container: measurement, positioning,
// wrap-content sizing, gravity, right-to-left mirroring and baselines.
//
// ## Documents
//
// [graph] - Layout documents, their TOML and JSON encodings, and the solved
// [graph.Result] frames.
//
// ## Visualization
//
// [render/frames] - Solved frames as SVG, PNG, or a character grid.
//
// [render/nodelink] - Rule dependency graphs as Graphviz DOT, SVG, or PNG.
//
// [render] - SVG to PNG and PDF conversion.
//
// ## Infrastructure
//
// [pipeline] - Parse → solve → render with caching, shared by the CLI and the
// HTTP API.
//
// [cache] - Content-keyed storage for solved layouts and artifacts: file,
// memory, Redis, and MongoDB backends.
//
// [server] - The HTTP API.
//
// [config] - The TOML configuration file.
//
// [observability] - Hooks for metrics and tracing around parse, solve,
// render, and cache access.
//
// [errors] - Coded errors and input validation.
//
// # Testing
//
//	go test ./pkg/...
//
// [core/rules]: https://pkg.go.dev/github.com/matzehuels/relayout/pkg/core/rules
// [core/depgraph]: https://pkg.go.dev/github.com/matzehuels/relayout/pkg/core/depgraph
// [depgraph.ErrCycle]: https://pkg.go.dev/github.com/matzehuels/relayout/pkg/core/depgraph#ErrCycle
// [core/measure]: https://pkg.go.dev/github.com/matzehuels/relayout/pkg/core/measure
// [core/relative]: https://pkg.go.dev/github.com/matzehuels/relayout/pkg/core/relative
// [graph]: https://pkg.go.dev/github.com/matzehuels/relayout/pkg/graph
// [graph.Result]: https://pkg.go.dev/github.com/matzehuels/relayout/pkg/graph#Result
// [render/frames]: https://pkg.go.dev/github.com/matzehuels/relayout/pkg/render/frames
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/relayout/pkg/render/nodelink
// [render]: https://pkg.go.dev/github.com/matzehuels/relayout/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/relayout/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/relayout/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/relayout/pkg/server
// [config]: https://pkg.go.dev/github.com/matzehuels/relayout/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/relayout/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/relayout/pkg/errors
package pkg
