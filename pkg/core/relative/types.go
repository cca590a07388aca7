package relative

import (
	"fmt"
	"strings"

	"github.com/matzehuels/relayout/pkg/core/measure"
	"github.com/matzehuels/relayout/pkg/core/rules"
)

// Rect is a rectangle in container-local coordinates. Right and Bottom are
// exclusive.
type Rect struct {
	Left, Top, Right, Bottom int
}

// Width returns Right - Left.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns Bottom - Top.
func (r Rect) Height() int { return r.Bottom - r.Top }

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d][%d,%d]", r.Left, r.Top, r.Right, r.Bottom)
}

// Edges holds a value per side, used for margins and padding.
type Edges struct {
	Left, Top, Right, Bottom int
}

// EdgeAll returns Edges with the same value on every side.
func EdgeAll(n int) Edges { return Edges{Left: n, Top: n, Right: n, Bottom: n} }

// Size is a measured width and height.
type Size struct {
	Width, Height int
}

// Visibility controls whether a child takes part in layout.
type Visibility int

const (
	// Visible children are measured, positioned and drawn.
	Visible Visibility = iota
	// Invisible children are measured and positioned but not drawn.
	Invisible
	// Gone children are excluded from layout entirely.
	Gone
)

func (v Visibility) String() string {
	switch v {
	case Invisible:
		return "invisible"
	case Gone:
		return "gone"
	default:
		return "visible"
	}
}

// ParseVisibility accepts "visible" (or ""), "invisible" and "gone".
func ParseVisibility(s string) (Visibility, error) {
	switch strings.ToLower(s) {
	case "", "visible":
		return Visible, nil
	case "invisible":
		return Invisible, nil
	case "gone":
		return Gone, nil
	}
	return Visible, fmt.Errorf("unknown visibility %q", s)
}

// View is the host-side element behind a child.
//
// Measure must be idempotent for identical specs until the view's own state
// changes. A view that is itself a container may lay out its own children
// synchronously inside Measure.
type View interface {
	// Measure returns the size the view takes under the given specs.
	Measure(width, height measure.Spec) (Size, error)
	// Baseline returns the offset of the text baseline from the view's top,
	// or -1 when the view has none. Only valid after Measure.
	Baseline() int
	// Layout commits the view's frame in its container's coordinates.
	Layout(frame Rect)
}

// Params is the per-child layout description.
type Params struct {
	// Width and Height are pixel sizes or measure.MatchParent /
	// measure.WrapContent.
	Width, Height int
	Margins       Edges
	// Rules are the authored relation rules. They are never modified by
	// layout; the resolved copy lives on the Child.
	Rules rules.Table
	// AlignWithParentIfMissing makes sibling rules whose target is missing
	// or gone fall back to the container edge.
	AlignWithParentIfMissing bool
}

// WrapParams returns Params that wrap content on both axes.
func WrapParams() Params {
	return Params{Width: measure.WrapContent, Height: measure.WrapContent}
}

// Child is one element of a relative container.
//
// ID must be unique within the container to be referenced by rules; 0 means
// the child cannot be referenced. The remaining exported fields may be
// changed between passes.
type Child struct {
	ID         int
	Name       string
	Visibility Visibility
	Params     Params
	View       View

	resolved   rules.Table
	sortedWith rules.Table

	// Edges for the current pass, measure.Unset while free.
	left, top, right, bottom int
	// pinnedFar is set when a rule pins the edge a wrap-content width
	// leaves unknown to the parent: right in left-to-right, left in
	// right-to-left.
	pinnedFar bool
	// pinnedBottom is set when a rule pins the bottom edge to the parent.
	pinnedBottom bool

	measured Size
	frame    Rect
}

// NewChild returns a visible child with wrap-content params.
func NewChild(id int, view View) *Child {
	return &Child{ID: id, View: view, Params: WrapParams()}
}

// Key implements depgraph.Item.
func (c *Child) Key() int { return c.ID }

// Rule implements depgraph.Item with the resolved rule table.
func (c *Child) Rule(v rules.Verb) int { return c.resolved[v] }

// Resolved returns the physical rules used by the last pass.
func (c *Child) Resolved() rules.Table { return c.resolved }

// Measured returns the size reported by the last host measurement.
func (c *Child) Measured() Size { return c.measured }

// Frame returns the committed rectangle from the last completed pass.
func (c *Child) Frame() Rect { return c.frame }

func (c *Child) label() string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("#%d", c.ID)
}

func (c *Child) edges() Rect {
	return Rect{Left: c.left, Top: c.top, Right: c.right, Bottom: c.bottom}
}

// Frame is a committed child rectangle reported in a [Result].
type Frame struct {
	ID         int
	Name       string
	Visibility Visibility
	Rect       Rect
}

// Result is the outcome of [Layout.Solve].
type Result struct {
	Size     Size
	Baseline int // -1 when no child reports a baseline
	Frames   []Frame
}
