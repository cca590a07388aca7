package graph

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/matzehuels/relayout/pkg/core/depgraph"
	"github.com/matzehuels/relayout/pkg/core/measure"
	"github.com/matzehuels/relayout/pkg/core/relative"
	"github.com/matzehuels/relayout/pkg/core/rules"
	rerrors "github.com/matzehuels/relayout/pkg/errors"
)

// Built is a Document turned into a live container.
type Built struct {
	Name      string
	Layout    *relative.Layout
	Width     measure.Spec
	Height    measure.Spec
	Direction rules.Direction
	TargetSDK int
	// Warnings lists rules that will resolve to no target.
	Warnings []string

	ids      map[string]int
	names    map[int]string
	nested   map[int]*Built
	dangling []Edge
}

// ID returns the numeric child ID assigned to a document ID.
func (b *Built) ID(name string) (int, bool) {
	id, ok := b.ids[name]
	return id, ok
}

// NameOf returns the document ID of a numeric child ID.
func (b *Built) NameOf(id int) string { return b.names[id] }

// Nested returns the built container of a nested child.
func (b *Built) Nested(name string) (*Built, bool) {
	id, ok := b.ids[name]
	if !ok {
		return nil, false
	}
	n, ok := b.nested[id]
	return n, ok
}

// Build validates doc and constructs its container. Children get numeric
// IDs in document order starting at 1. opts are applied to every container,
// nested ones included.
func Build(doc *Document, opts ...relative.Option) (*Built, error) {
	if err := rerrors.ValidateDocumentName(doc.Name); err != nil {
		return nil, err
	}
	return build(doc, doc.Name, nil, opts)
}

func build(doc *Document, path string, parent *Built, opts []relative.Option) (*Built, error) {
	invalid := func(format string, args ...any) error {
		return rerrors.New(rerrors.ErrCodeInvalidDocument, "%s: %s", path, fmt.Sprintf(format, args...))
	}

	b := &Built{
		Name:   doc.Name,
		ids:    make(map[string]int, len(doc.Children)),
		names:  make(map[int]string, len(doc.Children)),
		nested: make(map[int]*Built),
	}

	var err error
	if b.Width, err = doc.Width.Spec(); err != nil {
		return nil, invalid("width: %v", err)
	}
	if b.Height, err = doc.Height.Spec(); err != nil {
		return nil, invalid("height: %v", err)
	}

	switch {
	case doc.Direction != "":
		if b.Direction, err = rules.ParseDirection(doc.Direction); err != nil {
			return nil, rerrors.Wrap(rerrors.ErrCodeInvalidDirection, err, "%s", path)
		}
	case parent != nil:
		b.Direction = parent.Direction
	}

	gravity, err := relative.ParseGravity(doc.Gravity)
	if err != nil {
		return nil, invalid("%v", err)
	}

	for i, c := range doc.Children {
		if err := rerrors.ValidateChildID(c.ID); err != nil {
			return nil, rerrors.Wrap(rerrors.ErrCodeInvalidDocument, err, "%s: child %d", path, i)
		}
		if _, dup := b.ids[c.ID]; dup {
			return nil, invalid("duplicate child id %q", c.ID)
		}
		b.ids[c.ID] = i + 1
		b.names[i+1] = c.ID
	}

	b.TargetSDK = doc.TargetSDK
	switch {
	case b.TargetSDK != 0:
	case parent != nil:
		b.TargetSDK = parent.TargetSDK
	default:
		b.TargetSDK = relative.CurrentPlatformLevel
	}

	lopts := []relative.Option{
		relative.WithPadding(edges(doc.Padding)),
		relative.WithGravity(gravity),
		relative.WithDirection(b.Direction),
		relative.WithCompat(relative.CompatForLevel(b.TargetSDK)),
		relative.WithMinSize(doc.MinWidth, doc.MinHeight),
	}
	if doc.IgnoreGravity != "" {
		id, ok := b.ids[doc.IgnoreGravity]
		if !ok {
			return nil, invalid("ignore_gravity names unknown child %q", doc.IgnoreGravity)
		}
		lopts = append(lopts, relative.WithIgnoreGravity(id))
	}
	b.Layout = relative.New(append(lopts, opts...)...)

	dangling := len(doc.Children) + 1
	for i := range doc.Children {
		child, err := b.child(&doc.Children[i], path, &dangling, opts)
		if err != nil {
			return nil, err
		}
		b.Layout.AddChild(child)
	}
	return b, nil
}

func (b *Built) child(c *Child, path string, dangling *int, opts []relative.Option) (*relative.Child, error) {
	id := b.ids[c.ID]
	out := &relative.Child{ID: id, Name: c.ID}

	vis, err := relative.ParseVisibility(c.Visibility)
	if err != nil {
		return nil, rerrors.Wrap(rerrors.ErrCodeInvalidDocument, err, "%s.%s", path, c.ID)
	}
	out.Visibility = vis

	out.Params = relative.Params{
		Width:                    sizeOf(c.Width),
		Height:                   sizeOf(c.Height),
		Margins:                  edges(c.Margins),
		AlignWithParentIfMissing: c.AlignWithParentIfMissing,
	}

	verbs := make([]string, 0, len(c.Rules))
	for name := range c.Rules {
		verbs = append(verbs, name)
	}
	sort.Strings(verbs)
	for _, name := range verbs {
		v, err := rules.ParseVerb(name)
		if err != nil {
			return nil, rerrors.Wrap(rerrors.ErrCodeUnknownVerb, err, "%s.%s", path, c.ID)
		}
		target, err := b.target(c.Rules[name], v, c.ID, path, dangling)
		if err != nil {
			return nil, err
		}
		if target != 0 {
			out.Params.Rules.Add(v, target)
		}
	}

	if c.Layout != nil {
		inner, err := build(c.Layout, path+"."+c.ID, b, opts)
		if err != nil {
			return nil, err
		}
		b.nested[id] = inner
		b.Warnings = append(b.Warnings, inner.Warnings...)
		out.View = relative.NewNested(inner.Layout)
		return out, nil
	}

	box := relative.NewBox(c.Intrinsic.Width, c.Intrinsic.Height)
	if c.Baseline != nil {
		box.BaselineOffset = *c.Baseline
	}
	out.View = box
	return out, nil
}

// target converts a rule value to a table slot value.
func (b *Built) target(value any, v rules.Verb, owner, path string, dangling *int) (int, error) {
	switch t := value.(type) {
	case bool:
		if !t {
			return 0, nil
		}
		if !v.IsParentRelative() {
			b.warnf("%s.%s: %s needs a sibling id, not true", path, owner, v)
		}
		return rules.True, nil
	case string:
		key := strings.TrimSpace(t)
		if strings.EqualFold(key, TargetParent) || strings.EqualFold(key, TargetTrue) {
			if !v.IsParentRelative() {
				b.warnf("%s.%s: %s needs a sibling id, not %q", path, owner, v, key)
			}
			return rules.True, nil
		}
		if v.IsParentRelative() {
			return 0, rerrors.New(rerrors.ErrCodeInvalidDocument, "%s.%s: %s takes true, not %q", path, owner, v, key)
		}
		if id, ok := b.ids[key]; ok {
			if key == owner {
				b.warnf("%s.%s: %s refers to itself", path, owner, v)
			}
			return id, nil
		}
		b.warnf("%s.%s: %s refers to unknown child %q", path, owner, v, key)
		b.dangling = append(b.dangling, Edge{From: owner, To: key, Verb: v.String()})
		id := *dangling
		*dangling++
		return id, nil
	}
	return 0, rerrors.New(rerrors.ErrCodeInvalidDocument, "%s.%s: %s has unsupported value %v", path, owner, v, value)
}

func (b *Built) warnf(format string, args ...any) {
	b.Warnings = append(b.Warnings, fmt.Sprintf(format, args...))
}

func sizeOf(p *SizePolicy) int {
	if p == nil {
		return measure.WrapContent
	}
	return int(*p)
}

func edges(e Edges) relative.Edges {
	return relative.Edges{Left: e.Left, Top: e.Top, Right: e.Right, Bottom: e.Bottom}
}

// =============================================================================
// Solving
// =============================================================================

// Solve measures and lays out the container under its document bounds.
// A rule cycle is reported as ErrCodeUnsatisfiable.
func (b *Built) Solve() (Result, error) {
	res, err := b.Layout.Solve(b.Width, b.Height)
	if err != nil {
		if errors.Is(err, depgraph.ErrCycle) {
			return Result{}, rerrors.Wrap(rerrors.ErrCodeUnsatisfiable, err, "solve %s", b.Name)
		}
		return Result{}, rerrors.Wrap(rerrors.ErrCodeInternal, err, "solve %s", b.Name)
	}
	return b.result(res), nil
}

func (b *Built) result(res relative.Result) Result {
	return Result{
		Name:      b.Name,
		Width:     res.Size.Width,
		Height:    res.Size.Height,
		Baseline:  res.Baseline,
		Direction: b.Direction.String(),
		Frames:    b.frames(res.Frames),
	}
}

func (b *Built) frames(in []relative.Frame) []Frame {
	out := make([]Frame, 0, len(in))
	for _, f := range in {
		fr := Frame{
			ID:     b.names[f.ID],
			Left:   f.Rect.Left,
			Top:    f.Rect.Top,
			Right:  f.Rect.Right,
			Bottom: f.Rect.Bottom,
		}
		if f.Visibility != relative.Visible {
			fr.Visibility = f.Visibility.String()
		}
		if inner, ok := b.nested[f.ID]; ok {
			fr.Children = inner.frames(inner.Layout.Result().Frames)
		}
		out = append(out, fr)
	}
	return out
}

// =============================================================================
// Dependencies
// =============================================================================

// Axis names accepted by [Built.Edges].
const (
	AxisHorizontal = "horizontal"
	AxisVertical   = "vertical"
)

// Edge is a named dependency between two children.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Verb string `json:"verb"`
}

func axisVerbs(axis string) ([]rules.Verb, error) {
	switch axis {
	case AxisHorizontal:
		return rules.Horizontal, nil
	case AxisVertical:
		return rules.Vertical, nil
	}
	return nil, rerrors.New(rerrors.ErrCodeInvalidInput, "unknown axis %q", axis)
}

// Edges returns the dependency edges of the top-level container for axis.
// Rules naming no child have no edge; see [Built.Dangling].
func (b *Built) Edges(axis string) ([]Edge, error) {
	verbs, err := axisVerbs(axis)
	if err != nil {
		return nil, err
	}
	deps := b.Layout.Dependencies(verbs)
	out := make([]Edge, len(deps))
	for i, e := range deps {
		out[i] = Edge{From: b.names[e.From], To: b.names[e.To], Verb: e.Verb.String()}
	}
	return out, nil
}

// Dangling returns the authored rules on axis whose target names no child.
// To holds the unknown target as written.
func (b *Built) Dangling(axis string) ([]Edge, error) {
	verbs, err := axisVerbs(axis)
	if err != nil {
		return nil, err
	}
	var out []Edge
	for _, e := range b.dangling {
		for _, v := range verbs {
			if e.Verb == v.String() {
				out = append(out, e)
				break
			}
		}
	}
	return out, nil
}

// ChildNames returns the document IDs in document order.
func (b *Built) ChildNames() []string {
	out := make([]string, len(b.names))
	for id, name := range b.names {
		out[id-1] = name
	}
	return out
}
