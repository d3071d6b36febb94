package kernel

// Merge intersects two sorted sets with a scalar branchless zipper. It is
// the reference implementation the block kernels are validated against,
// and handles the sub-block tails they leave behind.
func Merge(a, b, out []uint32) int {
	ia, ib, n := 0, 0, 0
	for ia < len(a) && ib < len(b) {
		va, vb := a[ia], b[ib]
		if va == vb {
			out[n] = va
			n++
			ia++
			ib++
		} else {
			ia += b2i(va < vb)
			ib += b2i(vb < va)
		}
	}
	return n
}

// MergeBSR is the scalar zipper over base/state pairs. Matching bases AND
// their states; pairs whose intersected state is zero are dropped.
func MergeBSR(basesA, statesA, basesB, statesB, basesOut, statesOut []uint32) int {
	ia, ib, n := 0, 0, 0
	for ia < len(basesA) && ib < len(basesB) {
		ba, bb := basesA[ia], basesB[ib]
		if ba == bb {
			if s := statesA[ia] & statesB[ib]; s != 0 {
				basesOut[n] = ba
				statesOut[n] = s
				n++
			}
			ia++
			ib++
		} else {
			ia += b2i(ba < bb)
			ib += b2i(bb < ba)
		}
	}
	return n
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
