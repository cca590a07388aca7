package measure

// Axis describes one dimension of a child for [ChildSpec]. Start and End are
// the child's edges in container coordinates, [Unset] when free.
type Axis struct {
	Start, End   int // resolved edges, or Unset
	Size         int // declared size: >= 0, MatchParent or WrapContent
	StartMargin  int
	EndMargin    int
	StartPadding int // container padding on the start side
	EndPadding   int
}

// ChildSpec computes the measurement request for a child along one axis.
//
// containerSize is the container's own size on the axis, negative when the
// container itself is unbounded. allowBroken enables the legacy behaviour in
// which an unbounded container still computes bounds from its (negative)
// size instead of passing constraints through.
//
// Negative available space is passed through for exact sizes rather than
// clamped, so an unbounded container lets the child grow.
func ChildSpec(a Axis, containerSize int, allowBroken bool) Spec {
	unbounded := containerSize < 0
	bothFixed := a.Start != Unset && a.End != Unset

	if unbounded && !allowBroken {
		switch {
		case bothFixed:
			// Constraints fixed both edges, so child has an exact size.
			return Exact(max(0, a.End-a.Start))
		case a.Size >= 0:
			return Exact(a.Size)
		default:
			return Unbounded()
		}
	}

	start, end := a.Start, a.End
	if start == Unset {
		start = a.StartPadding + a.StartMargin
	}
	if end == Unset {
		end = containerSize - a.EndPadding - a.EndMargin
	}
	available := end - start

	fillMode := Exactly
	if unbounded {
		fillMode = Unspecified
	}

	switch {
	case bothFixed:
		return Spec{Mode: fillMode, Size: max(0, available)}
	case a.Size >= 0:
		if available >= 0 {
			return Exact(min(available, a.Size))
		}
		// Room to grow.
		return Exact(a.Size)
	case a.Size == MatchParent:
		return Spec{Mode: fillMode, Size: max(0, available)}
	case a.Size == WrapContent:
		if available >= 0 {
			return UpTo(available)
		}
		return Unbounded()
	}
	return Spec{Mode: Unspecified}
}
