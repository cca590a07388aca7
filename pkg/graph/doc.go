// Package graph provides the serialization types for layout documents and
// solved layouts.
//
// This package sits at the boundary between the file and wire formats and
// the core solver:
//
//   - [Document], [Child]: an authored container, read from TOML or JSON
//   - [Built]: a Document turned into a live relative.Layout
//   - [Result], [Frame]: the solved rectangles, written as JSON
//
// # Documents
//
// Children are referenced by string IDs. Rule values name a sibling, or are
// true (or "parent") for parent-relative and centering rules:
//
//	name = "login"
//	width = { mode = "exact", size = 360 }
//	height = { mode = "at_most", size = 640 }
//	padding = { left = 16, right = 16, top = 16, bottom = 16 }
//
//	[[children]]
//	id = "user"
//	width = "match"
//	intrinsic = { width = 200, height = 40 }
//
//	[[children]]
//	id = "submit"
//	intrinsic = { width = 96, height = 40 }
//	rules = { below = "user", align_parent_end = true }
//
// Verb names are matched case-insensitively in snake_case or camelCase, so
// "align_parent_end", "alignParentEnd" and "layout_alignParentEnd" are the
// same rule. A child with a layout table is itself a container.
//
// # Building and solving
//
//	doc, _ := graph.ReadDocumentFile("login.toml")
//	built, err := graph.Build(doc)
//	res, err := built.Solve()
//	graph.WriteResultFile(res, "login.json")
//
// Rules that name an unknown child or the child itself are kept and resolve
// to no target at layout time; [Built.Warnings] lists them. A rule cycle
// fails Solve with ErrCodeUnsatisfiable.
//
// # Concurrency
//
// A Built owns mutable solver state and must not be solved concurrently.
package graph
