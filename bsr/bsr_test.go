package bsr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSortedExpandRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 5, 31, 32, 33, 64, 1000, 1 << 30}

	s := FromSorted(values)
	require.Equal(t, len(values), s.Cardinality())
	assert.Equal(t, values, s.Expand(nil))

	// Group boundaries: 0..31 share base 0, 32/33 share base 1.
	assert.Equal(t, []uint32{0, 1, 2, 31, 1 << 25}, s.Bases)
	assert.Equal(t, uint32(1<<0|1<<1|1<<5|1<<31), s.States[0])
	assert.Equal(t, uint32(1<<0|1<<1), s.States[1])
}

func TestFromSortedEmpty(t *testing.T) {
	s := FromSorted(nil)
	assert.Zero(t, s.Len())
	assert.Zero(t, s.Cardinality())
	assert.Empty(t, s.Expand(nil))
}

func TestAppendInvariants(t *testing.T) {
	s := New(4)
	s.Append(1, 0b1)
	s.Append(5, 0b1010)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 3, s.Cardinality())

	assert.PanicsWithValue(t, "bsr: zero state", func() { s.Append(9, 0) })
	assert.PanicsWithValue(t, "bsr: bases not strictly increasing", func() { s.Append(5, 1) })
	assert.PanicsWithValue(t, "bsr: bases not strictly increasing", func() { s.Append(4, 1) })
}

func TestEqual(t *testing.T) {
	a := FromSorted([]uint32{1, 2, 3, 40})
	b := FromSorted([]uint32{1, 2, 3, 40})
	c := FromSorted([]uint32{1, 2, 3, 41})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(FromSorted([]uint32{1})))
}
