package rules

import (
	"fmt"
	"strings"
)

// Direction is the resolved text direction of a container.
type Direction int

const (
	// LTR lays out start-to-end from the left edge.
	LTR Direction = iota
	// RTL lays out start-to-end from the right edge.
	RTL
)

// String returns "ltr" or "rtl".
func (d Direction) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}

// ParseDirection accepts "ltr", "rtl" and the empty string (LTR).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ltr":
		return LTR, nil
	case "rtl":
		return RTL, nil
	}
	return LTR, fmt.Errorf("unknown direction %q", s)
}

// logicalPair ties a start/end verb pair to the physical pair it resolves
// into. start maps to left in LTR.
type logicalPair struct {
	start, end  Verb
	left, right Verb
}

var pairs = [...]logicalPair{
	{start: AlignStart, end: AlignEnd, left: AlignLeft, right: AlignRight},
	{start: StartOf, end: EndOf, left: LeftOf, right: RightOf},
	{start: AlignParentStart, end: AlignParentEnd, left: AlignParentLeft, right: AlignParentRight},
}

// Resolve returns the physical rule table for the given direction.
//
// In legacy mode physical rules win and start/end only fill empty left/right
// slots, mapping start to left and end to right whatever the direction.
// Otherwise a logical rule anywhere in a pair discards both physical rules
// of that pair and start/end map by direction.
//
// The authored table is passed by value and never modified. All logical
// slots are zero in the returned table.
func Resolve(authored Table, dir Direction, legacy bool) Table {
	r := authored
	for _, p := range pairs {
		if legacy {
			resolveLegacy(&r, p)
		} else {
			resolveModern(&r, p, dir == RTL)
		}
	}
	return r
}

func resolveLegacy(r *Table, p logicalPair) {
	if r[p.start] != 0 {
		if r[p.left] == 0 {
			r[p.left] = r[p.start]
		}
		r[p.start] = 0
	}
	if r[p.end] != 0 {
		if r[p.right] == 0 {
			r[p.right] = r[p.end]
		}
		r[p.end] = 0
	}
}

func resolveModern(r *Table, p logicalPair, rtl bool) {
	if (r[p.start] != 0 || r[p.end] != 0) && (r[p.left] != 0 || r[p.right] != 0) {
		r[p.left] = 0
		r[p.right] = 0
	}
	startSlot, endSlot := p.left, p.right
	if rtl {
		startSlot, endSlot = p.right, p.left
	}
	if r[p.start] != 0 {
		r[startSlot] = r[p.start]
		r[p.start] = 0
	}
	if r[p.end] != 0 {
		r[endSlot] = r[p.end]
		r[p.end] = 0
	}
}
