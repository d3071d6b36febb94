package kernel

import "math/bits"

// The BMiss kernels follow Inoue, Ohara and Taura, "Faster Set
// Intersection with SIMD instructions by Reducing Branch Mispredictions"
// (VLDB'14). A cheap prefilter rejects block pairs with no candidate
// lanes; a run of consecutive rejected pairs (misses) switches to a
// coarser galloping advance, which only skips blocks whose maximum is
// below the other side's current minimum and therefore never overshoots
// a match.

// Number of consecutive missed block pairs before the advance policy
// gallops whole blocks instead of stepping block by block.
const gallopAfterMisses = 4

// BMiss intersects two sorted sets at block width 4. The prefilter
// compares the two low byte positions of every lane pair; only block
// pairs passing both move on to the full word check.
func BMiss(a, b, out []uint32) int {
	stA := len(a) / blockWidth * blockWidth
	stB := len(b) / blockWidth * blockWidth

	ia, ib, n := 0, 0, 0
	misses := 0
	for ia < stA && ib < stB {
		blkA := a[ia : ia+blockWidth]
		blkB := b[ib : ib+blockWidth]

		bc := byteCheckMask(blkA, blkB, 0, 0xffff)
		if bc != 0 {
			bc = byteCheckMask(blkA, blkB, 1, bc)
		}
		if bc == 0 {
			misses++
			aMax, bMax := blkA[blockWidth-1], blkB[blockWidth-1]
			ia += blockWidth * b2i(aMax <= bMax)
			ib += blockWidth * b2i(bMax <= aMax)
			if misses >= gallopAfterMisses {
				ia, ib = gallop(a, b, ia, ib, stA, stB, blockWidth)
			}
			continue
		}
		misses = 0

		for lane := 0; lane < blockWidth; lane++ {
			v := blkA[lane]
			if v == blkB[0] || v == blkB[1] || v == blkB[2] || v == blkB[3] {
				out[n] = v
				n++
			}
		}

		aMax, bMax := blkA[blockWidth-1], blkB[blockWidth-1]
		ia += blockWidth * b2i(aMax <= bMax)
		ib += blockWidth * b2i(bMax <= aMax)
	}

	return n + Merge(a[ia:], b[ib:], out[n:])
}

// BMissSTTNI processes 8 elements per block. The low 16 bits of all
// lanes are compared all-pairs in one step (equal-any semantics of the
// packed string compare), yielding a candidate mask over A; candidates
// are confirmed against the full 32-bit B block before emission. The
// wider block amortizes the mask computation on large inputs.
func BMissSTTNI(a, b, out []uint32) int {
	const w = blockWidthWide
	stA := len(a) / w * w
	stB := len(b) / w * w

	ia, ib, n := 0, 0, 0
	misses := 0
	for ia < stA && ib < stB {
		blkA := a[ia : ia+w]
		blkB := b[ib : ib+w]

		r := equalAny16(blkA, blkB)
		if r == 0 {
			misses++
			aMax, bMax := blkA[w-1], blkB[w-1]
			ia += w * b2i(aMax <= bMax)
			ib += w * b2i(bMax <= aMax)
			if misses >= gallopAfterMisses {
				ia, ib = gallop(a, b, ia, ib, stA, stB, w)
			}
			continue
		}
		misses = 0

		for r != 0 {
			lane := bits.TrailingZeros8(r)
			r &= r - 1

			v := blkA[lane]
			if v == blkB[0] || v == blkB[1] || v == blkB[2] || v == blkB[3] ||
				v == blkB[4] || v == blkB[5] || v == blkB[6] || v == blkB[7] {
				out[n] = v
				n++
			}
		}

		aMax, bMax := blkA[w-1], blkB[w-1]
		ia += w * b2i(aMax <= bMax)
		ib += w * b2i(bMax <= aMax)
	}

	return n + Merge(a[ia:], b[ib:], out[n:])
}

// equalAny16 compares the low 16 bits of every A lane against every B
// lane and sets bit i when a[i] has at least one 16-bit candidate in b.
func equalAny16(a, b []uint32) uint8 {
	var r uint8
	for lane := 0; lane < blockWidthWide; lane++ {
		la := uint16(a[lane])
		for off := 0; off < blockWidthWide; off++ {
			if la == uint16(b[off]) {
				r |= 1 << lane
				break
			}
		}
	}
	return r
}

// gallop advances whichever side is behind by whole blocks while its
// block maximum stays strictly below the other side's current minimum.
func gallop(a, b []uint32, ia, ib, stA, stB, w int) (int, int) {
	for ia < stA && ib < stB && a[ia+w-1] < b[ib] {
		ia += w
	}
	for ib < stB && ia < stA && b[ib+w-1] < a[ia] {
		ib += w
	}
	return ia, ib
}
