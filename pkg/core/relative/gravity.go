package relative

import (
	"fmt"
	"strings"

	"github.com/matzehuels/relayout/pkg/core/rules"
)

// Gravity aligns the block of all children inside the container.
type Gravity int

const (
	GravityLeft Gravity = 1 << iota
	GravityRight
	GravityCenterHorizontal
	GravityStart
	GravityEnd
	GravityTop
	GravityBottom
	GravityCenterVertical

	GravityCenter = GravityCenterHorizontal | GravityCenterVertical

	// DefaultGravity leaves children where the rules put them.
	DefaultGravity = GravityStart | GravityTop

	horizontalMask = GravityLeft | GravityRight | GravityCenterHorizontal | GravityStart | GravityEnd
	verticalMask   = GravityTop | GravityBottom | GravityCenterVertical
)

var gravityNames = []struct {
	name string
	g    Gravity
}{
	{"left", GravityLeft},
	{"right", GravityRight},
	{"center_horizontal", GravityCenterHorizontal},
	{"start", GravityStart},
	{"end", GravityEnd},
	{"top", GravityTop},
	{"bottom", GravityBottom},
	{"center_vertical", GravityCenterVertical},
}

// ParseGravity parses a "|"-separated list such as "center_vertical|end".
// "center" sets both centering flags. The empty string yields DefaultGravity.
func ParseGravity(s string) (Gravity, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultGravity, nil
	}
	var g Gravity
	for _, part := range strings.Split(s, "|") {
		part = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(part)), "-", "_")
		if part == "center" {
			g |= GravityCenter
			continue
		}
		found := false
		for _, n := range gravityNames {
			if n.name == part {
				g |= n.g
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown gravity %q", part)
		}
	}
	return g, nil
}

func (g Gravity) String() string {
	var parts []string
	for _, n := range gravityNames {
		if g&n.g != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// horizontal reports whether the gravity moves children horizontally.
func (g Gravity) horizontal() bool {
	h := g & horizontalMask
	return h != 0 && h != GravityStart
}

// vertical reports whether the gravity moves children vertically.
func (g Gravity) vertical() bool {
	v := g & verticalMask
	return v != 0 && v != GravityTop
}

// ApplyGravity places a w×h box inside container according to g. Start and
// End resolve to Left and Right by dir.
func ApplyGravity(g Gravity, w, h int, container Rect, dir rules.Direction) Rect {
	g = g.absolute(dir)

	var out Rect
	switch {
	case g&GravityCenterHorizontal != 0:
		out.Left = container.Left + (container.Width()-w)/2
	case g&GravityRight != 0 && g&GravityLeft == 0:
		out.Left = container.Right - w
	default:
		out.Left = container.Left
	}
	out.Right = out.Left + w

	switch {
	case g&GravityCenterVertical != 0:
		out.Top = container.Top + (container.Height()-h)/2
	case g&GravityBottom != 0 && g&GravityTop == 0:
		out.Top = container.Bottom - h
	default:
		out.Top = container.Top
	}
	out.Bottom = out.Top + h
	return out
}

func (g Gravity) absolute(dir rules.Direction) Gravity {
	start, end := GravityLeft, GravityRight
	if dir == rules.RTL {
		start, end = GravityRight, GravityLeft
	}
	if g&GravityStart != 0 {
		g = g&^GravityStart | start
	}
	if g&GravityEnd != 0 {
		g = g&^GravityEnd | end
	}
	return g
}
