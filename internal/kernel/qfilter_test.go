package kernel

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every plain kernel must satisfy the same contract; run the shared
// suite against each.
var plainKernels = map[string]func(a, b, out []uint32) int{
	"qfilter":     QFilter,
	"qfilter-v1":  QFilterV1,
	"bmiss":       BMiss,
	"bmiss-sttni": BMissSTTNI,
	"merge":       Merge,
}

func runPlain(t *testing.T, fn func(a, b, out []uint32) int, a, b []uint32) []uint32 {
	t.Helper()
	out := make([]uint32, min(len(a), len(b)))
	n := fn(a, b, out)
	require.LessOrEqual(t, n, len(out))
	return out[:n]
}

func TestPlainKernelsFixedVectors(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []uint32
		expected []uint32
	}{
		{
			"Worked example",
			[]uint32{1, 3, 5, 7, 9, 100},
			[]uint32{3, 4, 5, 9, 50, 100},
			[]uint32{3, 5, 9, 100},
		},
		{
			"Disjoint",
			[]uint32{2, 4, 6},
			[]uint32{1, 3, 5},
			[]uint32{},
		},
		{
			"Empty A",
			[]uint32{},
			[]uint32{1, 2, 3},
			[]uint32{},
		},
		{
			"Empty B",
			[]uint32{1, 2, 3},
			[]uint32{},
			[]uint32{},
		},
		{
			"Both empty",
			[]uint32{},
			[]uint32{},
			[]uint32{},
		},
		{
			"Single common element",
			[]uint32{42},
			[]uint32{42},
			[]uint32{42},
		},
		{
			"Sub-block sizes",
			[]uint32{1, 2, 3},
			[]uint32{2, 3, 4},
			[]uint32{2, 3},
		},
		{
			"Exactly one block each",
			[]uint32{10, 20, 30, 40},
			[]uint32{20, 25, 30, 45},
			[]uint32{20, 30},
		},
		{
			"Full block match",
			[]uint32{1, 2, 3, 4, 5, 6, 7, 8},
			[]uint32{1, 2, 3, 4, 5, 6, 7, 8},
			[]uint32{1, 2, 3, 4, 5, 6, 7, 8},
		},
		{
			"Matching low bytes, differing values",
			[]uint32{0x100, 0x200, 0x300, 0x400, 0x500, 0x600, 0x700, 0x800},
			[]uint32{0x1100, 0x1200, 0x1300, 0x1400, 0x1500, 0x1600, 0x1700, 0x1800},
			[]uint32{},
		},
		{
			"Large size disparity",
			[]uint32{5000},
			[]uint32{0, 1000, 2000, 3000, 4000, 5000, 6000, 7000, 8000, 9000, 10000, 11000},
			[]uint32{5000},
		},
	}

	for name, fn := range plainKernels {
		t.Run(name, func(t *testing.T) {
			for _, tc := range tests {
				t.Run(tc.name, func(t *testing.T) {
					assert.Equal(t, tc.expected, runPlain(t, fn, tc.a, tc.b))
				})
			}
		})
	}
}

func TestPlainKernelsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	a := genSorted(rng, 129, 1<<20)

	for name, fn := range plainKernels {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, a, runPlain(t, fn, a, a))
		})
	}
}

func TestPlainKernelsSymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	a := genSorted(rng, 200, 4096)
	b := genSorted(rng, 150, 4096)

	for name, fn := range plainKernels {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, runPlain(t, fn, a, b), runPlain(t, fn, b, a))
		})
	}
}

func TestPlainKernelsAgainstReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	sizes := []int{0, 1, 2, 3, 4, 5, 7, 8, 9, 15, 16, 17, 64, 100, 1000}
	maxes := []uint32{64, 1024, 1 << 16, 1 << 30}

	for _, max := range maxes {
		for _, na := range sizes {
			for _, nb := range sizes {
				if int(max) < na || int(max) < nb {
					continue
				}
				a := genSorted(rng, na, max)
				b := genSorted(rng, nb, max)
				want := refIntersect(a, b)

				for name, fn := range plainKernels {
					got := runPlain(t, fn, a, b)
					require.Equalf(t, want, got,
						"%s disagrees with reference (na=%d nb=%d max=%d)", name, na, nb, max)
				}
			}
		}
	}
}

// Values whose low bytes collide across lanes force the multi-match path
// in v2 and the byte-check refinement in v1.
func TestQFilterMultiMatchPath(t *testing.T) {
	a := []uint32{0x0101, 0x0201, 0x0301, 0x0401, 0x0501, 0x0601, 0x0701, 0x0801}
	b := []uint32{0x0101, 0x0301, 0x0501, 0x0701, 0x0901, 0x0b01, 0x0d01, 0x0f01}
	want := []uint32{0x0101, 0x0301, 0x0501, 0x0701}

	for name, fn := range plainKernels {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, runPlain(t, fn, a, b))
		})
	}
}

func BenchmarkQFilter(b *testing.B) {
	benchmarkPlain(b, QFilter)
}

func BenchmarkQFilterV1(b *testing.B) {
	benchmarkPlain(b, QFilterV1)
}

func benchmarkPlain(b *testing.B, fn func(a, b, out []uint32) int) {
	rng := rand.New(rand.NewSource(1))
	setA := genSorted(rng, 100000, 1<<22)
	setB := genSorted(rng, 100000, 1<<22)
	out := make([]uint32, 100000)

	b.ResetTimer()
	for b.Loop() {
		_ = fn(setA, setB, out)
	}
}
