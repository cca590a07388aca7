// Package measure defines the measurement requests a container passes to its
// children and the resolver that derives a child's request from its
// resolved edge constraints.
package measure

import (
	"fmt"
	"math"
)

// Mode tells a child how to interpret the size in a [Spec].
type Mode int

const (
	// Unspecified places no bound on the child.
	Unspecified Mode = iota
	// Exactly requires the child to take exactly Size.
	Exactly
	// AtMost lets the child choose any size up to Size.
	AtMost
)

func (m Mode) String() string {
	switch m {
	case Exactly:
		return "exactly"
	case AtMost:
		return "at_most"
	default:
		return "unspecified"
	}
}

// ParseMode accepts "exactly"/"exact", "at_most"/"atmost" and
// "unspecified"/"" (Unspecified).
func ParseMode(s string) (Mode, error) {
	switch s {
	case "exactly", "exact":
		return Exactly, nil
	case "at_most", "atmost", "at-most":
		return AtMost, nil
	case "", "unspecified", "unbounded":
		return Unspecified, nil
	}
	return Unspecified, fmt.Errorf("unknown measure mode %q", s)
}

// Spec is a measurement request for one axis.
type Spec struct {
	Mode Mode
	Size int
}

// Exact returns an Exactly spec.
func Exact(size int) Spec { return Spec{Mode: Exactly, Size: size} }

// UpTo returns an AtMost spec.
func UpTo(size int) Spec { return Spec{Mode: AtMost, Size: size} }

// Unbounded returns an Unspecified spec.
func Unbounded() Spec { return Spec{Mode: Unspecified} }

func (s Spec) String() string {
	if s.Mode == Unspecified {
		return "unspecified"
	}
	return fmt.Sprintf("%s %d", s.Mode, s.Size)
}

// Declared size policies. Non-negative values are exact pixel sizes.
const (
	MatchParent = -1 // fill the available space
	WrapContent = -2 // size to content
)

// Unset marks an edge that no rule has pinned.
const Unset = math.MinInt32

// Resolve picks the final size for a measured dimension: the spec size when
// Exactly, the smaller of size and spec size when AtMost, size otherwise.
// tooSmall reports that the desired size did not fit an AtMost bound.
func Resolve(size int, spec Spec) (result int, tooSmall bool) {
	switch spec.Mode {
	case Exactly:
		return spec.Size, false
	case AtMost:
		if spec.Size < size {
			return spec.Size, true
		}
		return size, false
	default:
		return size, false
	}
}

// Adopt returns the size a plain leaf with the given intrinsic size takes
// under spec: exact specs win, at-most specs clamp, unspecified keeps the
// intrinsic size.
func Adopt(intrinsic int, spec Spec) int {
	size, _ := Resolve(intrinsic, spec)
	return size
}
