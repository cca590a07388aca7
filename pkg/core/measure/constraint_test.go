package measure

import "testing"

func free() Axis { return Axis{Start: Unset, End: Unset} }

func TestChildSpec_WrapWithLeftEdge(t *testing.T) {
	a := free()
	a.Start = 10
	a.Size = WrapContent

	got := ChildSpec(a, 200, false)
	if want := UpTo(190); got != want {
		t.Errorf("ChildSpec() = %v, want %v", got, want)
	}
}

func TestChildSpec_BothEdgesFixed(t *testing.T) {
	a := Axis{Start: 20, End: 120, Size: WrapContent}
	if got, want := ChildSpec(a, 300, false), Exact(100); got != want {
		t.Errorf("ChildSpec() = %v, want %v", got, want)
	}

	a = Axis{Start: 120, End: 20, Size: 50}
	if got, want := ChildSpec(a, 300, false), Exact(0); got != want {
		t.Errorf("inverted edges: ChildSpec() = %v, want %v", got, want)
	}
}

func TestChildSpec_ExactSizeClampedToAvailable(t *testing.T) {
	a := free()
	a.Size = 500
	a.StartPadding, a.EndPadding = 10, 10

	if got, want := ChildSpec(a, 300, false), Exact(280); got != want {
		t.Errorf("ChildSpec() = %v, want %v", got, want)
	}
}

func TestChildSpec_ExactSizeGrowsPastNegativeAvailable(t *testing.T) {
	a := free()
	a.Start = 400
	a.Size = 50

	if got, want := ChildSpec(a, 300, false), Exact(50); got != want {
		t.Errorf("ChildSpec() = %v, want %v", got, want)
	}
}

func TestChildSpec_MatchParent(t *testing.T) {
	a := free()
	a.Size = MatchParent
	a.StartMargin, a.EndMargin = 5, 5

	if got, want := ChildSpec(a, 100, false), Exact(90); got != want {
		t.Errorf("ChildSpec() = %v, want %v", got, want)
	}
}

func TestChildSpec_WrapWithNegativeAvailable(t *testing.T) {
	a := free()
	a.Start = 150
	a.Size = WrapContent

	if got, want := ChildSpec(a, 100, false), Unbounded(); got != want {
		t.Errorf("ChildSpec() = %v, want %v", got, want)
	}
}

func TestChildSpec_UnboundedContainer(t *testing.T) {
	tests := []struct {
		name string
		axis Axis
		want Spec
	}{
		{"both edges", Axis{Start: 10, End: 60, Size: WrapContent}, Exact(50)},
		{"exact size", Axis{Start: 10, End: Unset, Size: 30}, Exact(30)},
		{"wrap", Axis{Start: 10, End: Unset, Size: WrapContent}, Unbounded()},
		{"match", Axis{Start: Unset, End: Unset, Size: MatchParent}, Unbounded()},
	}
	for _, tt := range tests {
		if got := ChildSpec(tt.axis, -1, false); got != tt.want {
			t.Errorf("%s: ChildSpec() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestChildSpec_BrokenSpecsComputeFromNegativeSize(t *testing.T) {
	// Legacy: an unbounded container still runs the bounded branch table
	// with its negative size.
	a := Axis{Start: 10, End: 60, Size: WrapContent}
	if got, want := ChildSpec(a, -1, true), (Spec{Mode: Unspecified, Size: 50}); got != want {
		t.Errorf("both edges: ChildSpec() = %v, want %v", got, want)
	}

	a = free()
	a.Size = WrapContent
	if got, want := ChildSpec(a, -1, true), Unbounded(); got != want {
		t.Errorf("wrap: ChildSpec() = %v, want %v", got, want)
	}

	a = free()
	a.Size = 40
	if got, want := ChildSpec(a, -1, true), Exact(40); got != want {
		t.Errorf("exact: ChildSpec() = %v, want %v", got, want)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		size     int
		spec     Spec
		want     int
		tooSmall bool
	}{
		{50, Exact(80), 80, false},
		{50, UpTo(40), 40, true},
		{50, UpTo(80), 50, false},
		{50, Unbounded(), 50, false},
	}
	for _, tt := range tests {
		got, small := Resolve(tt.size, tt.spec)
		if got != tt.want || small != tt.tooSmall {
			t.Errorf("Resolve(%d, %v) = %d, %v, want %d, %v", tt.size, tt.spec, got, small, tt.want, tt.tooSmall)
		}
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"exact": Exactly, "at_most": AtMost, "": Unspecified} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	if _, err := ParseMode("sometimes"); err == nil {
		t.Error("ParseMode(sometimes) should fail")
	}
}
