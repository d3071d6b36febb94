package setintersect

import "github.com/RoaringBitmap/roaring/v2"

// IntersectRoaring intersects via roaring bitmaps. Unlike the kernels it
// allocates per call, so it is not a hot-path choice; it earns its keep
// as an independently implemented oracle for tests and benchmarks, and
// as a bridge for callers already holding roaring data.
func IntersectRoaring(a, b, out []uint32) int {
	ra := roaring.New()
	ra.AddMany(a)
	rb := roaring.New()
	rb.AddMany(b)

	ra.And(rb)

	n := 0
	it := ra.Iterator()
	for it.HasNext() {
		out[n] = it.Next()
		n++
	}
	return n
}
