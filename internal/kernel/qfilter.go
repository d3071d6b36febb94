package kernel

import "math/bits"

// The QFilter kernels follow Han, Zou and Yu, "Speeding Up Set
// Intersections in Graph Algorithms using SIMD Instructions" (SIGMOD'18).
//
// Per block pair the low bytes are compared all-pairs and the resulting
// 16-bit mask indexes byteCheckDict. A single-match order selects the B
// permutation to verify with one full 32-bit lane compare; no-match skips
// the block pair entirely. The two revisions differ only in how a
// multi-match is resolved.

// QFilter is revision 2 of the QFilter kernel: a multi-match falls
// through to an all-pairs rotation compare instead of refining the byte
// check, trading extra lane compares for fewer dependent table lookups.
func QFilter(a, b, out []uint32) int {
	stA := len(a) / blockWidth * blockWidth
	stB := len(b) / blockWidth * blockWidth

	ia, ib, n := 0, 0, 0
	for ia < stA && ib < stB {
		blkA := a[ia : ia+blockWidth]
		blkB := b[ib : ib+blockWidth]

		order := byteCheckDict[byteCheckMask(blkA, blkB, 0, 0xffff)]
		if order != msNoMatch {
			var mask uint8
			if order >= 0 {
				sh := &matchShuffle[order]
				for lane := 0; lane < blockWidth; lane++ {
					if blkA[lane] == blkB[sh[lane]] {
						mask |= 1 << lane
					}
				}
			} else {
				for lane := 0; lane < blockWidth; lane++ {
					v := blkA[lane]
					if v == blkB[0] || v == blkB[1] || v == blkB[2] || v == blkB[3] {
						mask |= 1 << lane
					}
				}
			}
			n = emit4(out, n, blkA, mask)
		}

		aMax, bMax := blkA[blockWidth-1], blkB[blockWidth-1]
		ia += blockWidth * b2i(aMax <= bMax)
		ib += blockWidth * b2i(bMax <= aMax)
	}

	return n + Merge(a[ia:], b[ib:], out[n:])
}

// QFilterV1 is the original revision: a multi-match is refined byte
// position by byte position until the dictionary yields a single shuffle
// order, so emission always goes through one permuted lane compare.
func QFilterV1(a, b, out []uint32) int {
	stA := len(a) / blockWidth * blockWidth
	stB := len(b) / blockWidth * blockWidth

	ia, ib, n := 0, 0, 0
	for ia < stA && ib < stB {
		blkA := a[ia : ia+blockWidth]
		blkB := b[ib : ib+blockWidth]

		bc := byteCheckMask(blkA, blkB, 0, 0xffff)
		order := byteCheckDict[bc]
		for pos := uint(1); pos < 4 && order == msMultiMatch; pos++ {
			bc = byteCheckMask(blkA, blkB, pos, bc)
			order = byteCheckDict[bc]
		}
		// B holds no duplicates, so an A lane can fully equal at most
		// one B lane and four byte positions always resolve a
		// multi-match.
		if order >= 0 {
			var mask uint8
			sh := &matchShuffle[order]
			for lane := 0; lane < blockWidth; lane++ {
				if blkA[lane] == blkB[sh[lane]] {
					mask |= 1 << lane
				}
			}
			n = emit4(out, n, blkA, mask)
		}

		aMax, bMax := blkA[blockWidth-1], blkB[blockWidth-1]
		ia += blockWidth * b2i(aMax <= bMax)
		ib += blockWidth * b2i(bMax <= aMax)
	}

	return n + Merge(a[ia:], b[ib:], out[n:])
}

// emit4 appends the masked lanes of blk to out at offset n via the
// compaction table and returns the new offset.
func emit4(out []uint32, n int, blk []uint32, mask uint8) int {
	sh := &compact4[mask]
	cnt := bits.OnesCount8(mask)
	for k := 0; k < cnt; k++ {
		out[n+k] = blk[sh[k]]
	}
	return n + cnt
}
