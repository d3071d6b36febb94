package setintersect

import (
	"slices"

	"github.com/hupe1980/setintersect/bsr"
	"github.com/hupe1980/setintersect/internal/kernel"
)

// Intersect writes the intersection of two strictly ascending,
// duplicate-free sets into out and returns the number of elements
// written. out must have room for min(len(a), len(b)) elements; bytes
// past the returned count are unspecified.
//
// The kernel is chosen at init (see ActiveAlgorithm); all kernels
// produce identical output.
func Intersect(a, b, out []uint32) int {
	return IntersectAlgorithm(activeAlgorithm, a, b, out)
}

// IntersectAlgorithm runs one specific kernel. Same contract as
// Intersect.
func IntersectAlgorithm(algo Algorithm, a, b, out []uint32) int {
	switch algo {
	case QFilterV1:
		return kernel.QFilterV1(a, b, out)
	case BMiss:
		return kernel.BMiss(a, b, out)
	case BMissSTTNI:
		return kernel.BMissSTTNI(a, b, out)
	case Merge:
		return kernel.Merge(a, b, out)
	case Roaring:
		return IntersectRoaring(a, b, out)
	default:
		return kernel.QFilter(a, b, out)
	}
}

// IntersectBSR intersects two base/state sets into out and returns the
// number of (base, state) pairs written. out is reused (and grown if its
// capacity is short); groups whose intersected state is empty are
// dropped.
func IntersectBSR(a, b bsr.Set, out *bsr.Set) int {
	need := min(a.Len(), b.Len())
	out.Bases = slices.Grow(out.Bases[:0], need)[:need]
	out.States = slices.Grow(out.States[:0], need)[:need]

	var n int
	switch activeAlgorithm {
	case QFilterV1:
		n = kernel.QFilterBSRV1(a.Bases, a.States, b.Bases, b.States, out.Bases, out.States)
	case Merge:
		n = kernel.MergeBSR(a.Bases, a.States, b.Bases, b.States, out.Bases, out.States)
	default:
		n = kernel.QFilterBSR(a.Bases, a.States, b.Bases, b.States, out.Bases, out.States)
	}

	out.Bases = out.Bases[:n]
	out.States = out.States[:n]
	return n
}
