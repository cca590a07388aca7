package depgraph

import (
	"errors"
	"testing"

	"github.com/matzehuels/relayout/pkg/core/rules"
)

type item struct {
	key     int
	rules   rules.Table
	visible bool
}

func newItem(key int) *item { return &item{key: key, visible: true} }

func (i *item) Key() int              { return i.key }
func (i *item) Rule(v rules.Verb) int { return i.rules[v] }

func (i *item) with(v rules.Verb, target int) *item {
	i.rules.Add(v, target)
	return i
}

func keys(items []Item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.Key()
	}
	return out
}

func position(order []Item, key int) int {
	for i, it := range order {
		if it.Key() == key {
			return i
		}
	}
	return -1
}

func TestSort_DependenciesComeFirst(t *testing.T) {
	g := New()
	a := newItem(1)
	b := newItem(2).with(rules.RightOf, 1)
	c := newItem(3).with(rules.AlignLeft, 2).with(rules.LeftOf, 4)
	d := newItem(4)
	for _, it := range []*item{c, b, d, a} {
		g.Add(it)
	}

	order, err := g.Sort(rules.Horizontal)
	if err != nil {
		t.Fatalf("Sort() error: %v", err)
	}
	if len(order) != 4 {
		t.Fatalf("Sort() returned %d items, want 4", len(order))
	}

	for _, it := range []*item{a, b, c, d} {
		for _, dep := range it.rules.Targets(rules.Horizontal) {
			if position(order, dep) > position(order, it.key) {
				t.Errorf("dependency %d ordered after %d in %v", dep, it.key, keys(order))
			}
		}
	}
}

func TestSort_IgnoresOtherAxis(t *testing.T) {
	g := New()
	g.Add(newItem(1).with(rules.Below, 2))
	g.Add(newItem(2).with(rules.Below, 1))

	if _, err := g.Sort(rules.Horizontal); err != nil {
		t.Errorf("Sort(Horizontal) error: %v, want vertical rules ignored", err)
	}
	if _, err := g.Sort(rules.Vertical); !errors.Is(err, ErrCycle) {
		t.Errorf("Sort(Vertical) error = %v, want ErrCycle", err)
	}
}

func TestSort_CycleIsFatal(t *testing.T) {
	g := New()
	g.Add(newItem(1).with(rules.RightOf, 2))
	g.Add(newItem(2).with(rules.RightOf, 1))
	g.Add(newItem(3))

	order, err := g.Sort(rules.Horizontal)
	if order != nil {
		t.Errorf("Sort() returned partial order %v", keys(order))
	}
	var cerr *CycleError
	if !errors.As(err, &cerr) {
		t.Fatalf("Sort() error = %v, want *CycleError", err)
	}
	if len(cerr.Keys) != 2 || cerr.Keys[0] != 1 || cerr.Keys[1] != 2 {
		t.Errorf("CycleError.Keys = %v, want [1 2]", cerr.Keys)
	}
}

func TestSort_TriangleCycle(t *testing.T) {
	g := New()
	g.Add(newItem(1).with(rules.Above, 2))
	g.Add(newItem(2).with(rules.AlignTop, 3))
	g.Add(newItem(3).with(rules.AlignBaseline, 1))

	if _, err := g.Sort(rules.Vertical); !errors.Is(err, ErrCycle) {
		t.Errorf("Sort() error = %v, want ErrCycle", err)
	}
}

func TestSort_SkipsDanglingAndSelfReferences(t *testing.T) {
	g := New()
	g.Add(newItem(1).with(rules.RightOf, 1))
	g.Add(newItem(2).with(rules.RightOf, 99))

	order, err := g.Sort(rules.Horizontal)
	if err != nil {
		t.Fatalf("Sort() error: %v", err)
	}
	if len(order) != 2 {
		t.Errorf("Sort() = %v, want both items", keys(order))
	}
}

func TestSort_UnkeyedItemsAreOrdered(t *testing.T) {
	g := New()
	g.Add(newItem(0))
	g.Add(newItem(0).with(rules.RightOf, 5))
	g.Add(newItem(5))

	order, err := g.Sort(rules.Horizontal)
	if err != nil {
		t.Fatalf("Sort() error: %v", err)
	}
	if len(order) != 3 {
		t.Errorf("Sort() returned %d items, want 3", len(order))
	}
	if position(order, 5) > 2 {
		t.Errorf("keyed item missing from %v", keys(order))
	}
}

func TestSort_LIFORoots(t *testing.T) {
	g := New()
	g.Add(newItem(1))
	g.Add(newItem(2))
	g.Add(newItem(3))

	order, err := g.Sort(rules.Horizontal)
	if err != nil {
		t.Fatalf("Sort() error: %v", err)
	}
	got := keys(order)
	want := []int{3, 2, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Sort() = %v, want %v", got, want)
		}
	}
}

func TestClear_RebuildsFromScratch(t *testing.T) {
	g := New()
	g.Add(newItem(1).with(rules.RightOf, 2))
	g.Add(newItem(2).with(rules.RightOf, 1))
	if _, err := g.Sort(rules.Horizontal); err == nil {
		t.Fatal("expected cycle before Clear")
	}

	g.Clear()
	if g.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", g.Len())
	}
	if _, ok := g.Lookup(1); ok {
		t.Error("Lookup(1) should fail after Clear")
	}

	g.Add(newItem(1))
	g.Add(newItem(2).with(rules.RightOf, 1))
	order, err := g.Sort(rules.Horizontal)
	if err != nil {
		t.Fatalf("Sort() after Clear error: %v", err)
	}
	if got := keys(order); got[0] != 1 || got[1] != 2 {
		t.Errorf("Sort() = %v, want [1 2]", got)
	}
}

func TestZeroValueGraph(t *testing.T) {
	var g Graph
	g.Add(newItem(7))
	if it, ok := g.Lookup(7); !ok || it.Key() != 7 {
		t.Errorf("Lookup(7) = %v, %v", it, ok)
	}
}

func TestEdges(t *testing.T) {
	g := New()
	g.Add(newItem(1))
	g.Add(newItem(2).with(rules.RightOf, 1).with(rules.AlignTop, 1))

	h := g.Edges(rules.Horizontal)
	if len(h) != 1 || h[0] != (Edge{From: 2, To: 1, Verb: rules.RightOf}) {
		t.Errorf("Edges(Horizontal) = %v", h)
	}
	v := g.Edges(rules.Vertical)
	if len(v) != 1 || v[0].Verb != rules.AlignTop {
		t.Errorf("Edges(Vertical) = %v", v)
	}
}

func TestRelated_WalksPastInvisible(t *testing.T) {
	g := New()
	a := newItem(1)
	b := newItem(2).with(rules.RightOf, 1)
	b.visible = false
	g.Add(a)
	g.Add(b)

	visible := func(it Item) bool { return it.(*item).visible }

	got, ok := g.Related(2, rules.RightOf, visible)
	if !ok || got.Key() != 1 {
		t.Errorf("Related(2) = %v, %v, want item 1", got, ok)
	}
}

func TestRelated_SelfReferenceStops(t *testing.T) {
	g := New()
	b := newItem(2).with(rules.RightOf, 2)
	b.visible = false
	g.Add(b)

	visible := func(it Item) bool { return it.(*item).visible }
	if got, ok := g.Related(2, rules.RightOf, visible); ok {
		t.Errorf("Related() = %v, want no target", got)
	}
}

func TestRelated_Dangling(t *testing.T) {
	g := New()
	visible := func(Item) bool { return true }
	if _, ok := g.Related(42, rules.Above, visible); ok {
		t.Error("Related(42) should report no target")
	}
	if _, ok := g.Related(rules.True, rules.Above, visible); ok {
		t.Error("Related(True) should report no target")
	}
}

func TestRelated_InvisibleChainEndsInNothing(t *testing.T) {
	g := New()
	b := newItem(2)
	b.visible = false
	g.Add(b)

	visible := func(it Item) bool { return it.(*item).visible }
	if _, ok := g.Related(2, rules.LeftOf, visible); ok {
		t.Error("Related() through gone item with no rule should report no target")
	}
}
