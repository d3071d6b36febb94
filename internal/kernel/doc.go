// Package kernel implements fixed-block-width intersection kernels for
// sorted uint32 sets, plus their base/state (BSR) counterparts.
//
// # Kernels
//
//   - QFilter / QFilterV1: block-4 lookup-table shuffle kernels
//   - BMiss: block-4 miss-counting block-skip merge
//   - BMissSTTNI: block-8 wide-compare variant of BMiss
//   - QFilterBSR / QFilterBSRV1: QFilter over (base, state) pairs
//   - Merge / MergeBSR: scalar branchless reference implementations
//
// Every kernel writes the intersection into a caller-provided buffer and
// returns the number of elements written. Inputs must be strictly
// ascending and duplicate-free; kernels do not re-validate this. No
// kernel allocates, retains pointers, or mutates its inputs, so calls
// with disjoint output buffers are safe from concurrent goroutines.
//
// All block kernels share identical match-mask semantics and agree
// bit-for-bit with Merge; they differ only in how aggressively they
// compare and advance blocks.
package kernel
