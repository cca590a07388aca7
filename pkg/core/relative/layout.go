package relative

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/relayout/pkg/core/depgraph"
	"github.com/matzehuels/relayout/pkg/core/measure"
	"github.com/matzehuels/relayout/pkg/core/rules"
)

// ErrNotMeasured is returned by [Layout.Layout] when no measure pass has
// completed since the last change.
var ErrNotMeasured = errors.New("layout has not been measured")

// placeholderWidth stands in for an unbounded width in right-to-left
// containers. Horizontal arithmetic is done against it and the final mirror
// step shifts every child by the difference to the real width.
const placeholderWidth = 0x10000

// State is the phase of the most recent pass.
type State int

const (
	StateIdle State = iota
	StateHorizontal
	StateVertical
	StateAdjustment
	StateCommitted
)

func (s State) String() string {
	return [...]string{"idle", "horizontal", "vertical", "adjustment", "committed"}[s]
}

// Option configures a [Layout].
type Option func(*Layout)

// WithPadding sets the container padding.
func WithPadding(p Edges) Option { return func(l *Layout) { l.padding = p } }

// WithGravity sets the gravity applied to the block of children.
func WithGravity(g Gravity) Option { return func(l *Layout) { l.gravity = g } }

// WithIgnoreGravity exempts the child with the given ID from gravity.
func WithIgnoreGravity(id int) Option { return func(l *Layout) { l.ignoreGravity = id } }

// WithDirection sets the text direction.
func WithDirection(d rules.Direction) Option { return func(l *Layout) { l.dir = d } }

// WithCompat enables legacy behaviours.
func WithCompat(c Compat) Option { return func(l *Layout) { l.compat = c } }

// WithMinSize sets the minimum size of a wrap-content container.
func WithMinSize(w, h int) Option {
	return func(l *Layout) { l.minWidth, l.minHeight = w, h }
}

// WithLogger routes pass diagnostics to logger at debug level.
func WithLogger(logger *log.Logger) Option {
	return func(l *Layout) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Layout is a container that positions its children by relation rules.
//
// A Layout is owned by one goroutine. Its dependency graph and pass state
// are private, so a child view may measure a nested Layout from inside
// Measure without disturbing the parent.
type Layout struct {
	children []*Child
	graph    *depgraph.Graph
	sortedH  []*Child
	sortedV  []*Child
	dirty    bool

	padding       Edges
	gravity       Gravity
	ignoreGravity int
	dir           rules.Direction
	compat        Compat
	minWidth      int
	minHeight     int
	logger        *log.Logger

	state    State
	size     Size
	baseline *Child

	// placeholder is set while horizontal math runs against placeholderWidth.
	placeholder bool
}

// New returns an empty container with start/top gravity and left-to-right
// direction.
func New(opts ...Option) *Layout {
	l := &Layout{
		graph:   depgraph.New(),
		gravity: DefaultGravity,
		dirty:   true,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AddChild appends c to the container.
func (l *Layout) AddChild(c *Child) {
	l.children = append(l.children, c)
	l.invalidate()
}

// RemoveChild removes the first child with the given ID and reports whether
// one was found.
func (l *Layout) RemoveChild(id int) bool {
	for i, c := range l.children {
		if c.ID == id {
			l.children = append(l.children[:i], l.children[i+1:]...)
			l.invalidate()
			return true
		}
	}
	return false
}

// Child returns the child with the given ID.
func (l *Layout) Child(id int) (*Child, bool) {
	for _, c := range l.children {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// Children returns the children in insertion order.
func (l *Layout) Children() []*Child { return l.children }

// SetRules replaces the authored rules of the child with the given ID.
func (l *Layout) SetRules(id int, t rules.Table) bool {
	c, ok := l.Child(id)
	if !ok {
		return false
	}
	c.Params.Rules = t
	l.invalidate()
	return true
}

// SetDirection changes the text direction.
func (l *Layout) SetDirection(d rules.Direction) {
	l.dir = d
	l.invalidate()
}

// SetGravity changes the container gravity.
func (l *Layout) SetGravity(g Gravity) {
	l.gravity = g
	l.state = StateIdle
}

// SetCompat changes the legacy behaviours.
func (l *Layout) SetCompat(c Compat) {
	l.compat = c
	l.invalidate()
}

// Direction returns the text direction.
func (l *Layout) Direction() rules.Direction { return l.dir }

// Gravity returns the container gravity.
func (l *Layout) Gravity() Gravity { return l.gravity }

// Compat returns the legacy behaviours in effect.
func (l *Layout) Compat() Compat { return l.compat }

// State returns the phase reached by the last pass.
func (l *Layout) State() State { return l.state }

// Size returns the measured size of the last completed pass.
func (l *Layout) Size() Size { return l.size }

// Graph exposes the dependency graph built by the last pass.
func (l *Layout) Graph() *depgraph.Graph { return l.graph }

func (l *Layout) invalidate() {
	l.dirty = true
	l.state = StateIdle
}

// Baseline returns the offset from the container top of the baseline of the
// top-start-most child, or -1.
func (l *Layout) Baseline() int {
	c := l.baseline
	if c == nil || c.View == nil {
		return -1
	}
	b := c.View.Baseline()
	if b < 0 {
		return -1
	}
	return c.frame.Top + b
}

// Solve measures the container under the given specs, commits every child
// frame through View.Layout and returns the result.
func (l *Layout) Solve(width, height measure.Spec) (Result, error) {
	if _, err := l.Measure(width, height); err != nil {
		return Result{}, err
	}
	if err := l.Layout(); err != nil {
		return Result{}, err
	}
	return l.Result(), nil
}

// Layout hands each laid-out child its committed frame.
func (l *Layout) Layout() error {
	if l.state != StateCommitted {
		return ErrNotMeasured
	}
	for _, c := range l.children {
		if c.Visibility == Gone || c.View == nil {
			continue
		}
		c.View.Layout(c.frame)
	}
	return nil
}

// Result reports the committed frames of the last completed pass, in child
// order. Gone children are omitted.
func (l *Layout) Result() Result {
	res := Result{Size: l.size, Baseline: l.Baseline()}
	for _, c := range l.children {
		if c.Visibility == Gone {
			continue
		}
		res.Frames = append(res.Frames, Frame{ID: c.ID, Name: c.Name, Visibility: c.Visibility, Rect: c.frame})
	}
	return res
}

// Dependencies resolves every child's rules for the current direction and
// returns the dependency edges among children for verbs. It does not sort,
// so it also reports the edges of a cyclic container.
func (l *Layout) Dependencies(verbs []rules.Verb) []depgraph.Edge {
	l.graph.Clear()
	for _, c := range l.children {
		c.resolved = rules.Resolve(c.Params.Rules, l.dir, l.compat.LegacyRules)
		l.graph.Add(c)
	}
	l.dirty = true
	return l.graph.Edges(verbs)
}

// pass is the scratch state of one measure pass.
type pass struct {
	myWidth, myHeight     int
	width, height         int
	wrapWidth, wrapHeight bool
	offsetH, offsetV      bool
	hGravity, vGravity    bool
	ignore                *Child
	rtl                   bool

	// Bounds of all positioned children, margins included.
	left, top, right, bottom int
	counted                  bool
}

// Measure runs the horizontal, vertical and adjustment passes and returns
// the container size. A rule cycle aborts the pass with an error wrapping
// depgraph.ErrCycle; no frames are committed in that case.
func (l *Layout) Measure(widthSpec, heightSpec measure.Spec) (Size, error) {
	l.state = StateIdle
	if err := l.sortChildren(); err != nil {
		return Size{}, err
	}

	p := &pass{
		myWidth:  -1,
		myHeight: -1,
		left:     math.MaxInt32,
		top:      math.MaxInt32,
		right:    math.MinInt32,
		bottom:   math.MinInt32,
		rtl:      l.dir == rules.RTL,
	}
	if widthSpec.Mode != measure.Unspecified {
		p.myWidth = widthSpec.Size
	}
	if heightSpec.Mode != measure.Unspecified {
		p.myHeight = heightSpec.Size
	}
	if widthSpec.Mode == measure.Exactly {
		p.width = p.myWidth
	}
	if heightSpec.Mode == measure.Exactly {
		p.height = p.myHeight
	}
	p.wrapWidth = widthSpec.Mode != measure.Exactly
	p.wrapHeight = heightSpec.Mode != measure.Exactly
	p.hGravity = l.gravity.horizontal()
	p.vGravity = l.gravity.vertical()
	if (p.hGravity || p.vGravity) && l.ignoreGravity > 0 {
		p.ignore, _ = l.Child(l.ignoreGravity)
	}

	l.placeholder = false
	if p.rtl && p.myWidth == -1 {
		p.myWidth = placeholderWidth
		l.placeholder = true
	}

	l.logger.Debug("measure", "width", widthSpec, "height", heightSpec, "children", len(l.children), "dir", l.dir)

	if err := l.horizontalPass(p); err != nil {
		l.state = StateIdle
		return Size{}, err
	}
	if err := l.verticalPass(p); err != nil {
		l.state = StateIdle
		return Size{}, err
	}
	l.adjust(p, widthSpec, heightSpec)

	for _, c := range l.children {
		if c.Visibility == Gone {
			c.frame = Rect{}
			continue
		}
		c.frame = c.edges()
	}
	l.size = Size{Width: p.width, Height: p.height}
	l.state = StateCommitted
	l.logger.Debug("committed", "width", p.width, "height", p.height)
	return l.size, nil
}

// sortChildren resolves every child's rules for the current direction and
// rebuilds the dependency graph when the child set or any resolved rule
// changed since the last sort.
func (l *Layout) sortChildren() error {
	changed := l.dirty
	for _, c := range l.children {
		c.resolved = rules.Resolve(c.Params.Rules, l.dir, l.compat.LegacyRules)
		if c.resolved != c.sortedWith {
			changed = true
		}
	}
	if !changed {
		return nil
	}

	l.graph.Clear()
	for _, c := range l.children {
		l.graph.Add(c)
	}
	h, err := l.graph.Sort(rules.Horizontal)
	if err != nil {
		return fmt.Errorf("sort horizontal rules: %w", err)
	}
	v, err := l.graph.Sort(rules.Vertical)
	if err != nil {
		return fmt.Errorf("sort vertical rules: %w", err)
	}
	l.sortedH = asChildren(h)
	l.sortedV = asChildren(v)
	for _, c := range l.children {
		c.sortedWith = c.resolved
	}
	l.dirty = false
	l.logger.Debug("sorted children", "count", len(l.children))
	return nil
}

func asChildren(items []depgraph.Item) []*Child {
	out := make([]*Child, len(items))
	for i, it := range items {
		out[i] = it.(*Child)
	}
	return out
}

func (l *Layout) horizontalPass(p *pass) error {
	l.state = StateHorizontal
	for _, c := range l.sortedH {
		if c.Visibility == Gone {
			continue
		}
		l.applyHorizontalRules(c, p.myWidth)
		if err := l.measureHorizontal(c, p.myWidth, p.myHeight); err != nil {
			return err
		}
		if l.positionHorizontal(c, p.myWidth, p.wrapWidth) {
			p.offsetH = true
		}
	}
	return nil
}

func (l *Layout) verticalPass(p *pass) error {
	l.state = StateVertical
	for _, c := range l.sortedV {
		if c.Visibility == Gone {
			continue
		}
		l.applyVerticalRules(c, p.myHeight, baselineOf(c))
		ws := measure.ChildSpec(l.horizontalAxis(c), p.myWidth, l.compat.AllowBrokenMeasureSpecs)
		hs := measure.ChildSpec(l.verticalAxis(c), p.myHeight, l.compat.AllowBrokenMeasureSpecs)
		if err := l.measure(c, ws, hs); err != nil {
			return err
		}
		if l.positionVertical(c, p.myHeight, p.wrapHeight) {
			p.offsetV = true
		}
		l.accumulate(p, c)
	}

	l.baseline = nil
	for _, c := range l.sortedV {
		if c.Visibility == Gone {
			continue
		}
		if l.baseline == nil || comparePosition(c, l.baseline) < 0 {
			l.baseline = c
		}
	}
	return nil
}

// accumulate grows the wrap-content size and the gravity bounds by c.
func (l *Layout) accumulate(p *pass, c *Child) {
	m := c.Params.Margins
	farRight, farBottom := m.Right, m.Bottom
	nearLeft := m.Left
	if l.compat.WrapIgnoresMargins {
		farRight, farBottom, nearLeft = 0, 0, 0
	}
	if p.wrapWidth {
		if p.rtl {
			p.width = max(p.width, p.myWidth-c.left+nearLeft)
		} else {
			p.width = max(p.width, c.right+farRight)
		}
	}
	if p.wrapHeight {
		p.height = max(p.height, c.bottom+farBottom)
	}

	if c != p.ignore || p.vGravity {
		p.left = min(p.left, c.left-m.Left)
		p.top = min(p.top, c.top-m.Top)
	}
	if c != p.ignore || p.hGravity {
		p.right = max(p.right, c.right+m.Right)
		p.bottom = max(p.bottom, c.bottom+m.Bottom)
	}
	p.counted = true
}

// comparePosition orders children top-first, then left-first.
func comparePosition(a, b *Child) int {
	if d := a.top - b.top; d != 0 {
		return d
	}
	return a.left - b.left
}

func baselineOf(c *Child) int {
	if c.View == nil {
		return -1
	}
	return c.View.Baseline()
}

func (l *Layout) measure(c *Child, ws, hs measure.Spec) error {
	if c.View == nil {
		c.measured = Size{Width: measure.Adopt(0, ws), Height: measure.Adopt(0, hs)}
		return nil
	}
	size, err := c.View.Measure(ws, hs)
	if err != nil {
		return fmt.Errorf("measure %s: %w", c.label(), err)
	}
	c.measured = size
	return nil
}

// measureHorizontal measures c during the horizontal pass. The height spec
// comes from the declared height alone because vertical rules are not
// resolved yet.
func (l *Layout) measureHorizontal(c *Child, myWidth, myHeight int) error {
	ws := measure.ChildSpec(l.horizontalAxis(c), myWidth, l.compat.AllowBrokenMeasureSpecs)

	var hs measure.Spec
	if myHeight < 0 && !l.compat.AllowBrokenMeasureSpecs {
		if c.Params.Height >= 0 {
			hs = measure.Exact(c.Params.Height)
		} else {
			hs = measure.Unbounded()
		}
	} else {
		maxHeight := max(0, myHeight)
		if !l.compat.MeasureVerticalIgnoringPaddingMargin {
			m := c.Params.Margins
			maxHeight = max(0, myHeight-l.padding.Top-l.padding.Bottom-m.Top-m.Bottom)
		}
		mode := measure.AtMost
		if c.Params.Height == measure.MatchParent {
			mode = measure.Exactly
		}
		hs = measure.Spec{Mode: mode, Size: maxHeight}
	}
	return l.measure(c, ws, hs)
}

func (l *Layout) horizontalAxis(c *Child) measure.Axis {
	m := c.Params.Margins
	return measure.Axis{
		Start: c.left, End: c.right,
		Size:        c.Params.Width,
		StartMargin: m.Left, EndMargin: m.Right,
		StartPadding: l.padding.Left, EndPadding: l.padding.Right,
	}
}

func (l *Layout) verticalAxis(c *Child) measure.Axis {
	m := c.Params.Margins
	return measure.Axis{
		Start: c.top, End: c.bottom,
		Size:        c.Params.Height,
		StartMargin: m.Top, EndMargin: m.Bottom,
		StartPadding: l.padding.Top, EndPadding: l.padding.Bottom,
	}
}
