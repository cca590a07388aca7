package relative

import (
	"errors"
	"testing"

	"github.com/matzehuels/relayout/pkg/core/depgraph"
	"github.com/matzehuels/relayout/pkg/core/measure"
	"github.com/matzehuels/relayout/pkg/core/rules"
)

func box(id, w, h int) (*Child, *Box) {
	b := NewBox(w, h)
	return NewChild(id, b), b
}

func frameOf(t *testing.T, l *Layout, id int) Rect {
	t.Helper()
	c, ok := l.Child(id)
	if !ok {
		t.Fatalf("child %d not found", id)
	}
	return c.Frame()
}

func solve(t *testing.T, l *Layout, w, h measure.Spec) Result {
	t.Helper()
	res, err := l.Solve(w, h)
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	return res
}

func TestSolve_AnchorsSiblingsAndCenters(t *testing.T) {
	l := New()
	a, _ := box(1, 50, 20)
	b, _ := box(2, 40, 20)
	b.Params.Margins.Left = 5
	b.Params.Rules.Add(rules.RightOf, 1)
	c, _ := box(3, 60, 10)
	c.Params.Rules.Add(rules.CenterHorizontal, rules.True)
	l.AddChild(a)
	l.AddChild(b)
	l.AddChild(c)

	res := solve(t, l, measure.Exact(300), measure.Unbounded())

	if want := (Size{Width: 300, Height: 20}); res.Size != want {
		t.Errorf("Size = %v, want %v", res.Size, want)
	}
	tests := []struct {
		id   int
		want Rect
	}{
		{1, Rect{0, 0, 50, 20}},
		{2, Rect{55, 0, 95, 20}},
		{3, Rect{120, 0, 180, 10}},
	}
	for _, tt := range tests {
		if got := frameOf(t, l, tt.id); got != tt.want {
			t.Errorf("frame(%d) = %v, want %v", tt.id, got, tt.want)
		}
	}
	if l.State() != StateCommitted {
		t.Errorf("State() = %v, want committed", l.State())
	}
}

func TestSolve_WrapWidthFixesAlignParentRight(t *testing.T) {
	l := New(WithPadding(Edges{Left: 4, Right: 6}))
	c, _ := box(1, 50, 10)
	c.Params.Width = 50
	c.Params.Margins.Right = 3
	c.Params.Rules.Add(rules.AlignParentRight, rules.True)
	l.AddChild(c)

	res := solve(t, l, measure.Unbounded(), measure.Unbounded())

	if res.Size.Width != 63 {
		t.Errorf("Width = %d, want 63", res.Size.Width)
	}
	if got, want := c.Frame(), (Rect{4, 0, 54, 10}); got != want {
		t.Errorf("Frame() = %v, want %v", got, want)
	}
}

func TestSolve_AtMostWidthAlignsParentRight(t *testing.T) {
	l := New(WithPadding(Edges{Left: 4, Right: 6}))
	c, _ := box(1, 50, 10)
	c.Params.Width = 50
	c.Params.Margins.Right = 3
	c.Params.Rules.Add(rules.AlignParentRight, rules.True)
	l.AddChild(c)

	res := solve(t, l, measure.UpTo(200), measure.Unbounded())

	if res.Size.Width != 200 {
		t.Errorf("Width = %d, want 200", res.Size.Width)
	}
	if got, want := c.Frame(), (Rect{141, 0, 191, 10}); got != want {
		t.Errorf("Frame() = %v, want %v", got, want)
	}
}

func TestSolve_CycleIsFatal(t *testing.T) {
	l := New()
	a, ab := box(1, 10, 10)
	a.Params.Rules.Add(rules.LeftOf, 2)
	b, _ := box(2, 10, 10)
	b.Params.Rules.Add(rules.LeftOf, 1)
	l.AddChild(a)
	l.AddChild(b)

	_, err := l.Solve(measure.Exact(100), measure.Exact(100))
	if !errors.Is(err, depgraph.ErrCycle) {
		t.Fatalf("Solve() error = %v, want ErrCycle", err)
	}
	var cerr *depgraph.CycleError
	if !errors.As(err, &cerr) || len(cerr.Keys) != 2 {
		t.Errorf("cycle keys = %v, want two keys", cerr)
	}
	if l.State() != StateIdle {
		t.Errorf("State() = %v, want idle", l.State())
	}
	if ab.Layouts() != 0 {
		t.Errorf("Layouts() = %d, want 0", ab.Layouts())
	}
	if err := l.Layout(); !errors.Is(err, ErrNotMeasured) {
		t.Errorf("Layout() error = %v, want ErrNotMeasured", err)
	}
}

func TestSolve_VerticalCycleIsFatal(t *testing.T) {
	l := New()
	a, _ := box(1, 10, 10)
	a.Params.Rules.Add(rules.Above, 2)
	b, _ := box(2, 10, 10)
	b.Params.Rules.Add(rules.AlignBaseline, 1)
	l.AddChild(a)
	l.AddChild(b)

	if _, err := l.Measure(measure.Exact(100), measure.Exact(100)); !errors.Is(err, depgraph.ErrCycle) {
		t.Errorf("Measure() error = %v, want ErrCycle", err)
	}
}

func TestSolve_RTLLogicalRules(t *testing.T) {
	l := New(WithDirection(rules.RTL))
	a, _ := box(1, 50, 10)
	a.Params.Rules.Add(rules.EndOf, 2)
	b, _ := box(2, 30, 10)
	b.Params.Rules.Add(rules.AlignParentStart, rules.True)
	l.AddChild(a)
	l.AddChild(b)

	solve(t, l, measure.Exact(200), measure.Unbounded())

	if got, want := frameOf(t, l, 2), (Rect{170, 0, 200, 10}); got != want {
		t.Errorf("frame(2) = %v, want %v", got, want)
	}
	if got, want := frameOf(t, l, 1), (Rect{120, 0, 170, 10}); got != want {
		t.Errorf("frame(1) = %v, want %v", got, want)
	}
}

func TestSolve_RTLWrapMirrorsPlaceholder(t *testing.T) {
	l := New(WithDirection(rules.RTL))
	a, _ := box(1, 50, 10)
	a.Params.Rules.Add(rules.EndOf, 2)
	b, _ := box(2, 30, 10)
	b.Params.Rules.Add(rules.AlignParentStart, rules.True)
	l.AddChild(a)
	l.AddChild(b)

	res := solve(t, l, measure.Unbounded(), measure.Unbounded())

	if res.Size.Width != 80 {
		t.Errorf("Width = %d, want 80", res.Size.Width)
	}
	if got, want := frameOf(t, l, 2), (Rect{50, 0, 80, 10}); got != want {
		t.Errorf("frame(2) = %v, want %v", got, want)
	}
	if got, want := frameOf(t, l, 1), (Rect{0, 0, 50, 10}); got != want {
		t.Errorf("frame(1) = %v, want %v", got, want)
	}
}

func TestSolve_DirectionChangeResorts(t *testing.T) {
	l := New()
	c, _ := box(1, 50, 10)
	c.Params.Rules.Add(rules.AlignParentEnd, rules.True)
	l.AddChild(c)

	solve(t, l, measure.Exact(200), measure.Exact(50))
	if got, want := c.Frame(), (Rect{150, 0, 200, 10}); got != want {
		t.Errorf("LTR Frame() = %v, want %v", got, want)
	}

	l.SetDirection(rules.RTL)
	solve(t, l, measure.Exact(200), measure.Exact(50))
	if got, want := c.Frame(), (Rect{0, 0, 50, 10}); got != want {
		t.Errorf("RTL Frame() = %v, want %v", got, want)
	}
	if !c.Params.Rules.Has(rules.AlignParentEnd) {
		t.Error("authored rules were modified")
	}
}

func TestSolve_LegacyRulesIgnoreDirection(t *testing.T) {
	l := New(WithDirection(rules.RTL), WithCompat(CompatForLevel(16)))
	c, _ := box(1, 50, 10)
	c.Params.Rules.Add(rules.AlignParentEnd, rules.True)
	l.AddChild(c)

	solve(t, l, measure.Exact(200), measure.Exact(50))

	if got, want := c.Frame(), (Rect{150, 0, 200, 10}); got != want {
		t.Errorf("Frame() = %v, want %v", got, want)
	}
}

func TestSolve_GravityCenter(t *testing.T) {
	l := New(WithGravity(GravityCenter), WithIgnoreGravity(2))
	a, _ := box(1, 40, 20)
	b, _ := box(2, 10, 10)
	l.AddChild(a)
	l.AddChild(b)

	solve(t, l, measure.Exact(200), measure.Exact(100))

	if got, want := frameOf(t, l, 1), (Rect{80, 40, 120, 60}); got != want {
		t.Errorf("frame(1) = %v, want %v", got, want)
	}
	if got, want := frameOf(t, l, 2), (Rect{0, 0, 10, 10}); got != want {
		t.Errorf("ignored frame(2) = %v, want %v", got, want)
	}
}

func TestSolve_GravityBottomEnd(t *testing.T) {
	l := New(WithGravity(GravityBottom|GravityEnd), WithPadding(EdgeAll(5)))
	c, _ := box(1, 40, 20)
	l.AddChild(c)

	solve(t, l, measure.Exact(200), measure.Exact(100))

	if got, want := c.Frame(), (Rect{155, 75, 195, 95}); got != want {
		t.Errorf("Frame() = %v, want %v", got, want)
	}
}

func TestSolve_AlignBaseline(t *testing.T) {
	l := New()
	a, ab := box(1, 50, 30)
	ab.BaselineOffset = 20
	b, bb := box(2, 40, 10)
	bb.BaselineOffset = 8
	b.Params.Rules.Add(rules.RightOf, 1)
	b.Params.Rules.Add(rules.AlignBaseline, 1)
	l.AddChild(a)
	l.AddChild(b)

	res := solve(t, l, measure.Exact(200), measure.Unbounded())

	if got, want := b.Frame(), (Rect{50, 12, 90, 22}); got != want {
		t.Errorf("Frame() = %v, want %v", got, want)
	}
	if res.Size.Height != 30 {
		t.Errorf("Height = %d, want 30", res.Size.Height)
	}
	if res.Baseline != 20 {
		t.Errorf("Baseline = %d, want 20", res.Baseline)
	}
}

func TestSolve_AboveParentBottom(t *testing.T) {
	l := New()
	a, _ := box(1, 10, 10)
	a.Params.Rules.Add(rules.AlignParentBottom, rules.True)
	b, _ := box(2, 10, 20)
	b.Params.Rules.Add(rules.Above, 1)
	l.AddChild(b)
	l.AddChild(a)

	solve(t, l, measure.Exact(100), measure.Exact(100))

	if got, want := a.Frame(), (Rect{0, 90, 10, 100}); got != want {
		t.Errorf("frame(a) = %v, want %v", got, want)
	}
	if got, want := b.Frame(), (Rect{0, 70, 10, 90}); got != want {
		t.Errorf("frame(b) = %v, want %v", got, want)
	}
}

func TestSolve_GoneSiblingIsWalked(t *testing.T) {
	l := New()
	a, _ := box(1, 50, 10)
	b, bb := box(2, 20, 10)
	b.Visibility = Gone
	b.Params.Rules.Add(rules.RightOf, 1)
	c, _ := box(3, 30, 10)
	c.Params.Rules.Add(rules.RightOf, 2)
	l.AddChild(a)
	l.AddChild(b)
	l.AddChild(c)

	res := solve(t, l, measure.Exact(200), measure.Unbounded())

	if got, want := c.Frame(), (Rect{50, 0, 80, 10}); got != want {
		t.Errorf("Frame() = %v, want %v", got, want)
	}
	if bb.Measures() != 0 || bb.Layouts() != 0 {
		t.Errorf("gone child measured %d times, laid out %d times", bb.Measures(), bb.Layouts())
	}
	if len(res.Frames) != 2 {
		t.Errorf("len(Frames) = %d, want 2", len(res.Frames))
	}
}

func TestSolve_AlignWithParentIfMissing(t *testing.T) {
	l := New(WithPadding(Edges{Left: 7}))
	c, _ := box(1, 30, 10)
	c.Params.AlignWithParentIfMissing = true
	c.Params.Margins.Left = 2
	c.Params.Rules.Add(rules.RightOf, 9)
	l.AddChild(c)

	solve(t, l, measure.Exact(200), measure.Unbounded())

	if got, want := c.Frame(), (Rect{9, 0, 39, 10}); got != want {
		t.Errorf("Frame() = %v, want %v", got, want)
	}
}

func TestSolve_WrapHeightCentersVertically(t *testing.T) {
	l := New()
	a, _ := box(1, 10, 40)
	b, _ := box(2, 10, 10)
	b.Params.Rules.Add(rules.CenterVertical, rules.True)
	l.AddChild(a)
	l.AddChild(b)

	res := solve(t, l, measure.Exact(100), measure.Unbounded())

	if res.Size.Height != 40 {
		t.Errorf("Height = %d, want 40", res.Size.Height)
	}
	if got, want := b.Frame(), (Rect{0, 15, 10, 25}); got != want {
		t.Errorf("Frame() = %v, want %v", got, want)
	}
}

func TestSolve_MinSize(t *testing.T) {
	l := New(WithMinSize(100, 50))
	c, _ := box(1, 10, 10)
	l.AddChild(c)

	res := solve(t, l, measure.Unbounded(), measure.Unbounded())

	if want := (Size{Width: 100, Height: 50}); res.Size != want {
		t.Errorf("Size = %v, want %v", res.Size, want)
	}
}

func TestSolve_MatchParentChild(t *testing.T) {
	l := New(WithPadding(EdgeAll(10)))
	c, _ := box(1, 10, 10)
	c.Params.Width = measure.MatchParent
	c.Params.Height = measure.MatchParent
	l.AddChild(c)

	solve(t, l, measure.Exact(200), measure.Exact(100))

	if got, want := c.Frame(), (Rect{10, 10, 190, 90}); got != want {
		t.Errorf("Frame() = %v, want %v", got, want)
	}
}

func TestSolve_NestedContainer(t *testing.T) {
	inner := New()
	ic, ib := box(1, 30, 10)
	ic.Params.Rules.Add(rules.AlignParentRight, rules.True)
	inner.AddChild(ic)

	outer := New()
	oc := NewChild(1, NewNested(inner))
	oc.Params.Width = 100
	oc.Params.Rules.Add(rules.CenterInParent, rules.True)
	outer.AddChild(oc)

	solve(t, outer, measure.Exact(200), measure.Exact(100))

	if got, want := oc.Frame(), (Rect{50, 45, 150, 55}); got != want {
		t.Errorf("outer Frame() = %v, want %v", got, want)
	}
	if got, want := ib.Frame(), (Rect{70, 0, 100, 10}); got != want {
		t.Errorf("inner Frame() = %v, want %v", got, want)
	}
}

func TestSolve_NestedCyclePropagates(t *testing.T) {
	inner := New()
	a, _ := box(1, 10, 10)
	a.Params.Rules.Add(rules.RightOf, 1)
	b, _ := box(2, 10, 10)
	a.Params.Rules.Add(rules.LeftOf, 2)
	b.Params.Rules.Add(rules.LeftOf, 1)
	inner.AddChild(a)
	inner.AddChild(b)

	outer := New()
	outer.AddChild(NewChild(1, NewNested(inner)))

	if _, err := outer.Solve(measure.Exact(100), measure.Exact(100)); !errors.Is(err, depgraph.ErrCycle) {
		t.Errorf("Solve() error = %v, want ErrCycle", err)
	}
	if outer.State() != StateIdle {
		t.Errorf("State() = %v, want idle", outer.State())
	}
}

func TestSolve_NoChildren(t *testing.T) {
	l := New(WithPadding(Edges{Left: 3, Right: 4, Top: 1, Bottom: 2}), WithGravity(GravityCenter))

	res := solve(t, l, measure.Unbounded(), measure.Unbounded())

	if want := (Size{Width: 4, Height: 2}); res.Size != want {
		t.Errorf("Size = %v, want %v", res.Size, want)
	}
	if res.Baseline != -1 {
		t.Errorf("Baseline = %d, want -1", res.Baseline)
	}
}

func TestRemoveChild(t *testing.T) {
	l := New()
	a, _ := box(1, 10, 10)
	b, _ := box(2, 10, 10)
	b.Params.Rules.Add(rules.RightOf, 1)
	l.AddChild(a)
	l.AddChild(b)
	solve(t, l, measure.Exact(100), measure.Exact(100))

	if !l.RemoveChild(1) {
		t.Fatal("RemoveChild(1) = false")
	}
	if l.RemoveChild(1) {
		t.Error("second RemoveChild(1) = true")
	}
	solve(t, l, measure.Exact(100), measure.Exact(100))
	if got, want := b.Frame(), (Rect{0, 0, 10, 10}); got != want {
		t.Errorf("Frame() = %v, want %v", got, want)
	}
}

func TestSolve_AlignWithParentIfMissingRTLUnboundedWidth(t *testing.T) {
	for _, verb := range []rules.Verb{rules.RightOf, rules.AlignLeft} {
		t.Run(verb.String(), func(t *testing.T) {
			build := func() (*Layout, *Child) {
				l := New(WithDirection(rules.RTL))
				a, _ := box(1, 100, 10)
				b, _ := box(2, 30, 10)
				b.Params.AlignWithParentIfMissing = true
				b.Params.Rules.Add(verb, 9)
				l.AddChild(a)
				l.AddChild(b)
				return l, b
			}

			exact, be := build()
			resExact := solve(t, exact, measure.Exact(100), measure.Unbounded())
			wrapped, bw := build()
			resWrap := solve(t, wrapped, measure.Unbounded(), measure.Unbounded())

			if resExact.Size != resWrap.Size {
				t.Errorf("Size = %v (unbounded), want %v (exact)", resWrap.Size, resExact.Size)
			}
			if got, want := be.Frame(), (Rect{0, 0, 30, 10}); got != want {
				t.Errorf("exact Frame() = %v, want %v", got, want)
			}
			if got, want := bw.Frame(), be.Frame(); got != want {
				t.Errorf("unbounded Frame() = %v, want %v", got, want)
			}
		})
	}
}

func TestSolve_AlignWithParentIfMissingLTRUnboundedWidth(t *testing.T) {
	l := New()
	a, _ := box(1, 100, 10)
	b, _ := box(2, 30, 10)
	b.Params.AlignWithParentIfMissing = true
	b.Params.Rules.Add(rules.LeftOf, 9)
	l.AddChild(a)
	l.AddChild(b)

	res := solve(t, l, measure.Unbounded(), measure.Unbounded())

	if res.Size.Width != 100 {
		t.Errorf("Width = %d, want 100", res.Size.Width)
	}
	if got, want := b.Frame(), (Rect{70, 0, 100, 10}); got != want {
		t.Errorf("Frame() = %v, want %v", got, want)
	}
}

func TestSolve_RTLAtMostWidthFallsBackToParentLeft(t *testing.T) {
	l := New(WithDirection(rules.RTL), WithPadding(Edges{Left: 4, Right: 6}))
	a, _ := box(1, 80, 10)
	b, _ := box(2, 30, 10)
	b.Params.AlignWithParentIfMissing = true
	b.Params.Rules.Add(rules.RightOf, 9)
	l.AddChild(a)
	l.AddChild(b)

	res := solve(t, l, measure.UpTo(300), measure.Unbounded())

	if res.Size.Width != 300 {
		t.Errorf("Width = %d, want 300", res.Size.Width)
	}
	if got, want := b.Frame(), (Rect{4, 0, 34, 10}); got != want {
		t.Errorf("Frame(2) = %v, want %v", got, want)
	}
	if got, want := a.Frame(), (Rect{214, 0, 294, 10}); got != want {
		t.Errorf("Frame(1) = %v, want %v", got, want)
	}
}

func TestSolve_RTLWrapWidthPadding(t *testing.T) {
	tests := []struct {
		dir   rules.Direction
		width int
		frame Rect
	}{
		{rules.LTR, 60, Rect{4, 0, 54, 10}},
		{rules.RTL, 60, Rect{4, 0, 54, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			l := New(WithDirection(tt.dir), WithPadding(Edges{Left: 4, Right: 6}))
			c, _ := box(1, 50, 10)
			l.AddChild(c)

			res := solve(t, l, measure.Unbounded(), measure.Unbounded())

			if res.Size.Width != tt.width {
				t.Errorf("Width = %d, want %d", res.Size.Width, tt.width)
			}
			if got := c.Frame(); got != tt.frame {
				t.Errorf("Frame() = %v, want %v", got, tt.frame)
			}
		})
	}
}

// specBox is a Box that records every measure request.
type specBox struct {
	Box
	widths, heights []measure.Spec
}

func newSpecBox(id, w, h int) (*Child, *specBox) {
	b := &specBox{Box: *NewBox(w, h)}
	return NewChild(id, b), b
}

func (b *specBox) Measure(width, height measure.Spec) (Size, error) {
	b.widths = append(b.widths, width)
	b.heights = append(b.heights, height)
	return b.Box.Measure(width, height)
}

func TestCompatForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  Compat
	}{
		{16, Compat{LegacyRules: true, AllowBrokenMeasureSpecs: true, MeasureVerticalIgnoringPaddingMargin: true, WrapIgnoresMargins: true}},
		{17, Compat{AllowBrokenMeasureSpecs: true, MeasureVerticalIgnoringPaddingMargin: true, WrapIgnoresMargins: true}},
		{18, Compat{WrapIgnoresMargins: true}},
		{19, Compat{}},
		{CurrentPlatformLevel, Compat{}},
	}
	for _, tt := range tests {
		if got := CompatForLevel(tt.level); got != tt.want {
			t.Errorf("CompatForLevel(%d) = %+v, want %+v", tt.level, got, tt.want)
		}
	}
}

func TestSolve_CompatMeasureVerticalIgnoringPaddingMargin(t *testing.T) {
	tests := []struct {
		name   string
		compat Compat
		want   measure.Spec
	}{
		{"current", Compat{}, measure.UpTo(75)},
		{"legacy", Compat{MeasureVerticalIgnoringPaddingMargin: true}, measure.UpTo(100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(WithCompat(tt.compat), WithPadding(Edges{Top: 10, Bottom: 10}))
			c, b := newSpecBox(1, 50, 20)
			c.Params.Margins.Top = 5
			l.AddChild(c)

			solve(t, l, measure.Exact(200), measure.Exact(100))

			if len(b.heights) == 0 {
				t.Fatal("child was not measured")
			}
			if got := b.heights[0]; got != tt.want {
				t.Errorf("horizontal pass height spec = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSolve_CompatWrapIgnoresMargins(t *testing.T) {
	tests := []struct {
		name   string
		compat Compat
		want   Size
	}{
		{"current", Compat{}, Size{Width: 62, Height: 23}},
		{"legacy", Compat{WrapIgnoresMargins: true}, Size{Width: 55, Height: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(WithCompat(tt.compat))
			c, _ := box(1, 50, 20)
			c.Params.Margins = Edges{Left: 5, Right: 7, Bottom: 3}
			l.AddChild(c)

			res := solve(t, l, measure.Unbounded(), measure.Unbounded())

			if res.Size != tt.want {
				t.Errorf("Size = %v, want %v", res.Size, tt.want)
			}
			if got, want := c.Frame(), (Rect{5, 0, 55, 20}); got != want {
				t.Errorf("Frame() = %v, want %v", got, want)
			}
		})
	}
}

func TestSolve_CompatAllowBrokenMeasureSpecs(t *testing.T) {
	tests := []struct {
		name   string
		compat Compat
		want   measure.Spec
	}{
		{"current", Compat{}, measure.Unbounded()},
		{"legacy", Compat{AllowBrokenMeasureSpecs: true}, measure.UpTo(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(WithCompat(tt.compat))
			c, b := newSpecBox(1, 50, 20)
			l.AddChild(c)

			res := solve(t, l, measure.Exact(200), measure.Unbounded())

			if len(b.heights) < 2 {
				t.Fatalf("child measured %d times, want 2", len(b.heights))
			}
			if got := b.heights[0]; got != tt.want {
				t.Errorf("horizontal pass height spec = %v, want %v", got, tt.want)
			}
			if got, want := b.widths[0], measure.UpTo(200); got != want {
				t.Errorf("horizontal pass width spec = %v, want %v", got, want)
			}
			if res.Size.Height != 20 {
				t.Errorf("Height = %d, want 20", res.Size.Height)
			}
		})
	}
}

func TestSolve_AlignWithParentIfMissingUnboundedHeight(t *testing.T) {
	for _, verb := range []rules.Verb{rules.Above, rules.AlignBottom} {
		t.Run(verb.String(), func(t *testing.T) {
			build := func() (*Layout, *Child) {
				l := New(WithPadding(Edges{Bottom: 2}))
				a, _ := box(1, 10, 100)
				b, _ := box(2, 10, 30)
				b.Params.AlignWithParentIfMissing = true
				b.Params.Rules.Add(verb, 9)
				l.AddChild(a)
				l.AddChild(b)
				return l, b
			}

			exact, be := build()
			solve(t, exact, measure.Exact(50), measure.Exact(102))
			wrapped, bw := build()
			res := solve(t, wrapped, measure.Exact(50), measure.Unbounded())

			if res.Size.Height != 102 {
				t.Errorf("Height = %d, want 102", res.Size.Height)
			}
			if got, want := be.Frame(), (Rect{0, 70, 10, 100}); got != want {
				t.Errorf("exact Frame() = %v, want %v", got, want)
			}
			if got, want := bw.Frame(), be.Frame(); got != want {
				t.Errorf("unbounded Frame() = %v, want %v", got, want)
			}
		})
	}
}
