package kernel

import "math/bits"

// BSR variants of the QFilter kernels. The block compare and the
// byte-check dictionary run over the base arrays exactly as the plain
// kernels run over elements; a matched pair of bases additionally ANDs
// the two states, and lanes whose intersected state is zero are masked
// out before emission so the output never carries empty groups.

// QFilterBSR intersects two BSR sequences with the revision-2 strategy.
// It writes matched (base, state) pairs to basesOut/statesOut and returns
// the number of pairs written.
func QFilterBSR(basesA, statesA, basesB, statesB, basesOut, statesOut []uint32) int {
	stA := len(basesA) / blockWidth * blockWidth
	stB := len(basesB) / blockWidth * blockWidth

	ia, ib, n := 0, 0, 0
	for ia < stA && ib < stB {
		blkA := basesA[ia : ia+blockWidth]
		blkB := basesB[ib : ib+blockWidth]

		order := byteCheckDict[byteCheckMask(blkA, blkB, 0, 0xffff)]
		if order != msNoMatch {
			stsA := statesA[ia : ia+blockWidth]
			stsB := statesB[ib : ib+blockWidth]

			var mask uint8
			var andState [blockWidth]uint32
			if order >= 0 {
				sh := &matchShuffle[order]
				for lane := 0; lane < blockWidth; lane++ {
					off := sh[lane]
					if blkA[lane] == blkB[off] {
						if s := stsA[lane] & stsB[off]; s != 0 {
							mask |= 1 << lane
							andState[lane] = s
						}
					}
				}
			} else {
				for lane := 0; lane < blockWidth; lane++ {
					v := blkA[lane]
					for off := 0; off < blockWidth; off++ {
						if v == blkB[off] {
							if s := stsA[lane] & stsB[off]; s != 0 {
								mask |= 1 << lane
								andState[lane] = s
							}
						}
					}
				}
			}
			n = emitBSR4(basesOut, statesOut, n, blkA, &andState, mask)
		}

		aMax, bMax := blkA[blockWidth-1], blkB[blockWidth-1]
		ia += blockWidth * b2i(aMax <= bMax)
		ib += blockWidth * b2i(bMax <= aMax)
	}

	return n + MergeBSR(
		basesA[ia:], statesA[ia:],
		basesB[ib:], statesB[ib:],
		basesOut[n:], statesOut[n:])
}

// QFilterBSRV1 mirrors QFilterV1: multi-matches on the base bytes are
// refined to a single shuffle order before states are touched.
func QFilterBSRV1(basesA, statesA, basesB, statesB, basesOut, statesOut []uint32) int {
	stA := len(basesA) / blockWidth * blockWidth
	stB := len(basesB) / blockWidth * blockWidth

	ia, ib, n := 0, 0, 0
	for ia < stA && ib < stB {
		blkA := basesA[ia : ia+blockWidth]
		blkB := basesB[ib : ib+blockWidth]

		bc := byteCheckMask(blkA, blkB, 0, 0xffff)
		order := byteCheckDict[bc]
		for pos := uint(1); pos < 4 && order == msMultiMatch; pos++ {
			bc = byteCheckMask(blkA, blkB, pos, bc)
			order = byteCheckDict[bc]
		}
		if order >= 0 {
			stsA := statesA[ia : ia+blockWidth]
			stsB := statesB[ib : ib+blockWidth]

			var mask uint8
			var andState [blockWidth]uint32
			sh := &matchShuffle[order]
			for lane := 0; lane < blockWidth; lane++ {
				off := sh[lane]
				if blkA[lane] == blkB[off] {
					if s := stsA[lane] & stsB[off]; s != 0 {
						mask |= 1 << lane
						andState[lane] = s
					}
				}
			}
			n = emitBSR4(basesOut, statesOut, n, blkA, &andState, mask)
		}

		aMax, bMax := blkA[blockWidth-1], blkB[blockWidth-1]
		ia += blockWidth * b2i(aMax <= bMax)
		ib += blockWidth * b2i(bMax <= aMax)
	}

	return n + MergeBSR(
		basesA[ia:], statesA[ia:],
		basesB[ib:], statesB[ib:],
		basesOut[n:], statesOut[n:])
}

func emitBSR4(basesOut, statesOut []uint32, n int, blk []uint32, andState *[blockWidth]uint32, mask uint8) int {
	sh := &compact4[mask]
	cnt := bits.OnesCount8(mask)
	for k := 0; k < cnt; k++ {
		lane := sh[k]
		basesOut[n+k] = blk[lane]
		statesOut[n+k] = andState[lane]
	}
	return n + cnt
}
