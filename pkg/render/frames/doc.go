// Package frames draws solved layouts.
//
// [SVG] draws every visible frame as a labelled rectangle in container
// coordinates; nested containers are drawn inside their frame. [Text] draws
// the same boxes on a character grid for terminals.
//
// Gone children have no frame and are skipped. Invisible children keep
// their frame and are drawn dashed.
package frames
