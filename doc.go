// Package setintersect computes intersections of sorted uint32 sets with
// fixed-block-width kernels, and of compressed base/state (BSR) sets.
//
// # Kernels
//
//   - QFilter (v1 and v2): lookup-table-driven block shuffle/compare
//   - BMiss: miss-counting block-skip merge
//   - BMissSTTNI: wide-block BMiss using string-compare match masks
//   - QFilterBSR (v1 and v2): QFilter over (base, bitmask) pairs
//
// All kernels agree bit-for-bit; they differ only in speed. The active
// kernel is selected at init and can be forced with SETINTERSECT_ALGO.
//
// # Contract
//
// Inputs must be strictly ascending and duplicate-free; this is not
// re-validated on the hot path. Output buffers are caller-provided and
// must hold min(len(a), len(b)) elements. Kernels never allocate and
// never mutate inputs, so concurrent calls with disjoint output buffers
// are safe.
package setintersect
