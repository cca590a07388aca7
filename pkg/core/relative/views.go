package relative

import "github.com/matzehuels/relayout/pkg/core/measure"

// Box is a View with a fixed intrinsic size. It adopts the size the specs
// allow and records what it was given.
type Box struct {
	Intrinsic Size
	// BaselineOffset is the baseline from the box top, or -1.
	BaselineOffset int

	measured Size
	frame    Rect
	measures int
	layouts  int
}

// NewBox returns a Box of the given intrinsic size without a baseline.
func NewBox(w, h int) *Box {
	return &Box{Intrinsic: Size{Width: w, Height: h}, BaselineOffset: -1}
}

// Measure implements View.
func (b *Box) Measure(width, height measure.Spec) (Size, error) {
	b.measures++
	b.measured = Size{
		Width:  measure.Adopt(b.Intrinsic.Width, width),
		Height: measure.Adopt(b.Intrinsic.Height, height),
	}
	return b.measured, nil
}

// Baseline implements View.
func (b *Box) Baseline() int { return b.BaselineOffset }

// Layout implements View.
func (b *Box) Layout(frame Rect) {
	b.layouts++
	b.frame = frame
}

// Frame returns the last committed frame.
func (b *Box) Frame() Rect { return b.frame }

// Measures returns how often Measure was called.
func (b *Box) Measures() int { return b.measures }

// Layouts returns how often Layout was called.
func (b *Box) Layouts() int { return b.layouts }

// Nested wraps a Layout so it can be the view of a child in another
// container. Measuring it runs a full pass of the inner container.
type Nested struct {
	Container *Layout
	frame     Rect
}

// NewNested returns a view backed by c.
func NewNested(c *Layout) *Nested { return &Nested{Container: c} }

// Measure implements View.
func (n *Nested) Measure(width, height measure.Spec) (Size, error) {
	return n.Container.Measure(width, height)
}

// Baseline implements View.
func (n *Nested) Baseline() int { return n.Container.Baseline() }

// Layout implements View. The inner children receive their frames in the
// inner container's coordinates.
func (n *Nested) Layout(frame Rect) {
	n.frame = frame
	if err := n.Container.Layout(); err != nil {
		n.Container.logger.Warn("nested layout skipped", "err", err)
	}
}

// Frame returns the frame the outer container committed.
func (n *Nested) Frame() Rect { return n.frame }
