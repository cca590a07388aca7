package graph

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/relayout/pkg/core/measure"
)

// Rule target keywords for parent-relative and centering rules.
const (
	TargetParent = "parent"
	TargetTrue   = "true"
)

// Document formats.
const (
	FormatTOML = "toml"
	FormatJSON = "json"
)

// =============================================================================
// Document - authored layout
// =============================================================================

// Document describes one relative container and its children.
//
//	name = "card"
//	width = { mode = "exact", size = 320 }
//	gravity = "center_vertical"
//
//	[[children]]
//	id = "title"
//	intrinsic = { width = 120, height = 20 }
//	rules = { align_parent_top = true }
//
//	[[children]]
//	id = "body"
//	width = "match"
//	rules = { below = "title" }
type Document struct {
	Name string `json:"name" toml:"name"`

	// Width and Height bound the container. A missing bound is unspecified.
	Width  Bound `json:"width,omitzero" toml:"width"`
	Height Bound `json:"height,omitzero" toml:"height"`

	Padding       Edges  `json:"padding,omitzero" toml:"padding"`
	Gravity       string `json:"gravity,omitempty" toml:"gravity"`
	IgnoreGravity string `json:"ignore_gravity,omitempty" toml:"ignore_gravity"`
	Direction     string `json:"direction,omitempty" toml:"direction"`
	MinWidth      int    `json:"min_width,omitempty" toml:"min_width"`
	MinHeight     int    `json:"min_height,omitempty" toml:"min_height"`

	// TargetSDK selects legacy behaviours; 0 means the current level.
	TargetSDK int `json:"target_sdk,omitempty" toml:"target_sdk"`

	Children []Child `json:"children" toml:"children"`
}

// Bound is a container measure spec.
type Bound struct {
	Mode string `json:"mode" toml:"mode"` // "exact", "at_most" or "unspecified"
	Size int    `json:"size,omitempty" toml:"size"`
}

// Spec converts b to a measure spec.
func (b Bound) Spec() (measure.Spec, error) {
	mode, err := measure.ParseMode(b.Mode)
	if err != nil {
		return measure.Spec{}, err
	}
	if mode == measure.Unspecified {
		return measure.Unbounded(), nil
	}
	if b.Size < 0 {
		return measure.Spec{}, fmt.Errorf("negative bound %d", b.Size)
	}
	return measure.Spec{Mode: mode, Size: b.Size}, nil
}

// BoundOf converts a measure spec back to a Bound.
func BoundOf(s measure.Spec) Bound {
	if s.Mode == measure.Unspecified {
		return Bound{Mode: s.Mode.String()}
	}
	return Bound{Mode: s.Mode.String(), Size: s.Size}
}

// Edges is padding or margins.
type Edges struct {
	Left   int `json:"left,omitempty" toml:"left"`
	Top    int `json:"top,omitempty" toml:"top"`
	Right  int `json:"right,omitempty" toml:"right"`
	Bottom int `json:"bottom,omitempty" toml:"bottom"`
}

// Child describes one element of a container.
type Child struct {
	ID         string `json:"id" toml:"id"`
	Visibility string `json:"visibility,omitempty" toml:"visibility"`

	// Width and Height default to wrap-content.
	Width   *SizePolicy `json:"width,omitempty" toml:"width"`
	Height  *SizePolicy `json:"height,omitempty" toml:"height"`
	Margins Edges       `json:"margins,omitzero" toml:"margins"`

	// Rules maps verb names to a sibling ID, "parent" or true.
	Rules                    map[string]any `json:"rules,omitempty" toml:"rules"`
	AlignWithParentIfMissing bool           `json:"align_with_parent_if_missing,omitempty" toml:"align_with_parent_if_missing"`

	// Intrinsic is the content size of a leaf child.
	Intrinsic Size `json:"intrinsic,omitzero" toml:"intrinsic"`
	// Baseline is the text baseline from the child top; nil means none.
	Baseline *int `json:"baseline,omitempty" toml:"baseline"`

	// Layout makes the child a nested container. Its own Width and Height
	// are ignored; the outer container measures it.
	Layout *Document `json:"layout,omitempty" toml:"layout"`
}

// Size is a width and height pair.
type Size struct {
	Width  int `json:"width" toml:"width"`
	Height int `json:"height" toml:"height"`
}

// =============================================================================
// SizePolicy - "match", "wrap" or pixels
// =============================================================================

// SizePolicy is a declared child size: pixels, measure.MatchParent or
// measure.WrapContent. It decodes from an integer or from "match",
// "match_parent", "fill_parent", "wrap" and "wrap_content".
type SizePolicy int

// Px returns a fixed size policy.
func Px(n int) *SizePolicy {
	p := SizePolicy(n)
	return &p
}

// Match returns the match-parent policy.
func Match() *SizePolicy { return Px(measure.MatchParent) }

// Wrap returns the wrap-content policy.
func Wrap() *SizePolicy { return Px(measure.WrapContent) }

// ParseSizePolicy parses the string form of a size policy.
func ParseSizePolicy(s string) (SizePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "match", "match_parent", "fill_parent":
		return SizePolicy(measure.MatchParent), nil
	case "wrap", "wrap_content", "":
		return SizePolicy(measure.WrapContent), nil
	}
	n, err := strconv.Atoi(strings.TrimSuffix(s, "px"))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	return SizePolicy(n), nil
}

func (p SizePolicy) String() string {
	switch int(p) {
	case measure.MatchParent:
		return "match"
	case measure.WrapContent:
		return "wrap"
	}
	return strconv.Itoa(int(p))
}

// UnmarshalTOML implements toml.Unmarshaler.
func (p *SizePolicy) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case int64:
		if v < 0 {
			return fmt.Errorf("invalid size %d", v)
		}
		*p = SizePolicy(v)
		return nil
	case string:
		parsed, err := ParseSizePolicy(v)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	}
	return fmt.Errorf("invalid size %v", v)
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *SizePolicy) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := ParseSizePolicy(s)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid size %s", data)
	}
	if n < 0 {
		return fmt.Errorf("invalid size %d", n)
	}
	*p = SizePolicy(n)
	return nil
}

// MarshalText implements encoding.TextMarshaler; TOML output uses it.
func (p SizePolicy) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// MarshalJSON implements json.Marshaler.
func (p SizePolicy) MarshalJSON() ([]byte, error) {
	if p < 0 {
		return json.Marshal(p.String())
	}
	return json.Marshal(int(p))
}

// =============================================================================
// Result - solved layout
// =============================================================================

// Result is the serialized outcome of solving a Document.
type Result struct {
	Name      string  `json:"name"`
	Key       string  `json:"key,omitempty"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Baseline  int     `json:"baseline"`
	Direction string  `json:"direction"`
	Frames    []Frame `json:"frames"`
}

// Frame is the committed rectangle of one child in its container's
// coordinates. Nested containers carry their children's frames.
type Frame struct {
	ID         string  `json:"id"`
	Visibility string  `json:"visibility,omitempty"`
	Left       int     `json:"left"`
	Top        int     `json:"top"`
	Right      int     `json:"right"`
	Bottom     int     `json:"bottom"`
	Children   []Frame `json:"children,omitempty"`
}

// Width returns Right - Left.
func (f Frame) Width() int { return f.Right - f.Left }

// Height returns Bottom - Top.
func (f Frame) Height() int { return f.Bottom - f.Top }

// Find returns the frame with the given ID at the top level of r.
func (r *Result) Find(id string) (Frame, bool) {
	for _, f := range r.Frames {
		if f.ID == id {
			return f, true
		}
	}
	return Frame{}, false
}
