// Package bsr implements the base/state representation of sorted uint32
// sets: each entry groups up to 32 consecutive values under one base,
// with a bitmask marking which offsets are present. Dense sets intersect
// faster in this form because one state AND covers a whole group.
package bsr

import "math/bits"

// Group geometry. A value v lives in group v>>Shift at bit v&Mask.
const (
	// Width is the number of values covered by one (base, state) pair.
	Width = 32
	// Shift converts a value to its base.
	Shift = 5
	// Mask extracts a value's bit offset within its group.
	Mask = Width - 1
)

// Set is a sorted uint32 set in base/state form. Bases are strictly
// increasing and states are never zero; both invariants are maintained
// by FromSorted and Append, and assumed everywhere else.
type Set struct {
	Bases  []uint32
	States []uint32
}

// New returns an empty Set with capacity for n pairs.
func New(n int) Set {
	return Set{
		Bases:  make([]uint32, 0, n),
		States: make([]uint32, 0, n),
	}
}

// FromSorted encodes a strictly ascending, duplicate-free slice.
func FromSorted(sorted []uint32) Set {
	s := Set{}
	for _, v := range sorted {
		base := v >> Shift
		bit := uint32(1) << (v & Mask)
		if last := len(s.Bases) - 1; last >= 0 && s.Bases[last] == base {
			s.States[last] |= bit
		} else {
			s.Bases = append(s.Bases, base)
			s.States = append(s.States, bit)
		}
	}
	return s
}

// Append adds one pair. The base must exceed the current last base and
// the state must be non-zero; violations indicate a caller bug.
func (s *Set) Append(base, state uint32) {
	if state == 0 {
		panic("bsr: zero state")
	}
	if last := len(s.Bases) - 1; last >= 0 && s.Bases[last] >= base {
		panic("bsr: bases not strictly increasing")
	}
	s.Bases = append(s.Bases, base)
	s.States = append(s.States, state)
}

// Len returns the number of (base, state) pairs.
func (s Set) Len() int {
	return len(s.Bases)
}

// Cardinality returns the number of encoded values.
func (s Set) Cardinality() int {
	n := 0
	for _, st := range s.States {
		n += bits.OnesCount32(st)
	}
	return n
}

// Expand appends the decoded sorted values to dst and returns it.
func (s Set) Expand(dst []uint32) []uint32 {
	for i, base := range s.Bases {
		high := base << Shift
		state := s.States[i]
		for state != 0 {
			dst = append(dst, high|uint32(bits.TrailingZeros32(state)))
			state &= state - 1
		}
	}
	return dst
}

// Equal reports whether two sets hold identical pairs.
func (s Set) Equal(o Set) bool {
	if len(s.Bases) != len(o.Bases) {
		return false
	}
	for i := range s.Bases {
		if s.Bases[i] != o.Bases[i] || s.States[i] != o.States[i] {
			return false
		}
	}
	return true
}
