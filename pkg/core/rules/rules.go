// Package rules defines the relation verbs a child uses to position itself
// relative to its siblings or its container, and the resolution of logical
// (start/end) verbs into physical (left/right) ones.
//
// # Two-copy model
//
// A [Table] holds authored rules exactly as written. [Resolve] derives a new
// Table for a concrete text direction without touching the authored copy,
// so resolving again with a different direction always starts from the
// original values:
//
//	authored := rules.Table{}
//	authored.Add(rules.AlignStart, 7)
//	ltr := rules.Resolve(authored, rules.LTR, false) // AlignLeft = 7
//	rtl := rules.Resolve(authored, rules.RTL, false) // AlignRight = 7
//
// After resolution every logical slot is zero; downstream code only consults
// physical verbs.
package rules

import (
	"fmt"
	"strings"
)

// Verb identifies one positioning rule.
type Verb int

// Relation verbs in canonical order.
const (
	LeftOf Verb = iota
	RightOf
	Above
	Below
	AlignBaseline
	AlignLeft
	AlignTop
	AlignRight
	AlignBottom
	AlignParentLeft
	AlignParentTop
	AlignParentRight
	AlignParentBottom
	CenterInParent
	CenterHorizontal
	CenterVertical
	StartOf
	EndOf
	AlignStart
	AlignEnd
	AlignParentStart
	AlignParentEnd

	// VerbCount is the number of relation verbs.
	VerbCount int = iota
)

// True is the slot value for parent-relative and centering rules, which
// carry no sibling target.
const True = -1

// Horizontal lists the verbs that create horizontal dependencies between
// siblings. It is the filter used when sorting children for the horizontal
// pass.
var Horizontal = []Verb{LeftOf, RightOf, AlignLeft, AlignRight, StartOf, EndOf, AlignStart, AlignEnd}

// Vertical lists the verbs that create vertical dependencies between
// siblings.
var Vertical = []Verb{Above, Below, AlignBaseline, AlignTop, AlignBottom}

var verbNames = [VerbCount]string{
	"left_of",
	"right_of",
	"above",
	"below",
	"align_baseline",
	"align_left",
	"align_top",
	"align_right",
	"align_bottom",
	"align_parent_left",
	"align_parent_top",
	"align_parent_right",
	"align_parent_bottom",
	"center_in_parent",
	"center_horizontal",
	"center_vertical",
	"start_of",
	"end_of",
	"align_start",
	"align_end",
	"align_parent_start",
	"align_parent_end",
}

// String returns the snake_case name of the verb.
func (v Verb) String() string {
	if v < 0 || int(v) >= VerbCount {
		return fmt.Sprintf("verb(%d)", int(v))
	}
	return verbNames[v]
}

// Valid reports whether v is one of the defined verbs.
func (v Verb) Valid() bool { return v >= 0 && int(v) < VerbCount }

// IsParentRelative reports whether the verb takes no sibling target and is
// set with [True].
func (v Verb) IsParentRelative() bool {
	switch v {
	case AlignParentLeft, AlignParentTop, AlignParentRight, AlignParentBottom,
		CenterInParent, CenterHorizontal, CenterVertical,
		AlignParentStart, AlignParentEnd:
		return true
	}
	return false
}

// IsLogical reports whether the verb is expressed in start/end terms and
// needs a text direction to become physical.
func (v Verb) IsLogical() bool { return v >= StartOf && int(v) < VerbCount }

// ParseVerb looks up a verb by name. Names are matched case-insensitively and
// accept both snake_case and camelCase ("alignParentLeft", "toRightOf").
func ParseVerb(name string) (Verb, error) {
	key := normalize(name)
	for i, n := range verbNames {
		if strings.ReplaceAll(n, "_", "") == key {
			return Verb(i), nil
		}
	}
	return 0, fmt.Errorf("unknown relation verb %q", name)
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.TrimPrefix(s, "layout")
	// Android-style names: toRightOf, toStartOf.
	return strings.TrimPrefix(s, "to")
}

// Table maps every verb to a slot value: 0 when unset, a sibling identifier
// for sibling-relative rules, or [True] for parent-relative rules.
//
// Table is a value type; copies are independent.
type Table [VerbCount]int

// Add sets the rule for verb. Parent-relative verbs ignore target and store
// [True]; pass 0 to any verb to clear it.
func (t *Table) Add(v Verb, target int) {
	if v.IsParentRelative() && target != 0 {
		target = True
	}
	t[v] = target
}

// Remove clears the rule for verb.
func (t *Table) Remove(v Verb) { t[v] = 0 }

// Get returns the slot value for verb.
func (t Table) Get(v Verb) int { return t[v] }

// Has reports whether a rule is set for verb.
func (t Table) Has(v Verb) bool { return t[v] != 0 }

// Targets returns the distinct sibling identifiers cited by the given verbs.
func (t Table) Targets(verbs []Verb) []int {
	var out []int
	seen := make(map[int]bool)
	for _, v := range verbs {
		id := t[v]
		if id > 0 && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// String lists the set rules, e.g. "right_of=3 center_vertical".
func (t Table) String() string {
	var parts []string
	for i, val := range t {
		switch {
		case val == 0:
		case val == True:
			parts = append(parts, verbNames[i])
		default:
			parts = append(parts, fmt.Sprintf("%s=%d", verbNames[i], val))
		}
	}
	return strings.Join(parts, " ")
}
