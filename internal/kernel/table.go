package kernel

// Block widths of the kernel family. The QFilter and BMiss kernels
// compare 4 elements per step; the STTNI variant doubles that.
const (
	blockWidth     = 4
	blockWidthWide = 8
)

// Outcomes of the byte-check dictionary lookup. Non-negative values are a
// packed shuffle order: 2 bits per lane, giving the B lane whose low byte
// matched that A lane.
const (
	msMultiMatch int16 = -1
	msNoMatch    int16 = -2
)

// Decision tables - built once at package init, read-only afterwards.
//
//   - byteCheckDict maps a 16-bit all-pairs low-byte comparison mask to
//     either msNoMatch, msMultiMatch, or a packed shuffle order.
//   - matchShuffle unpacks an order into per-lane B offsets.
//   - compact4 lists the set-bit positions of a 4-bit match mask, used to
//     emit matched lanes without scalar branching.
var (
	byteCheckDict [1 << 16]int16
	matchShuffle  [256][blockWidth]uint8
	compact4      [16][blockWidth]uint8
)

func init() {
	for mask := range byteCheckDict {
		byteCheckDict[mask] = maskToOrder(uint16(mask))
	}
	for order := range matchShuffle {
		for lane := 0; lane < blockWidth; lane++ {
			matchShuffle[order][lane] = uint8(order>>(2*lane)) & 0b11
		}
	}
	for mask := range compact4 {
		k := 0
		for lane := 0; lane < blockWidth; lane++ {
			if mask&(1<<lane) != 0 {
				compact4[mask][k] = uint8(lane)
				k++
			}
		}
	}
}

// maskToOrder classifies one 16-bit byte-check mask. Each nibble holds
// the comparison of one A lane against all four B lanes.
func maskToOrder(mask uint16) int16 {
	var offsets [blockWidth]int16
	for lane := 0; lane < blockWidth; lane++ {
		offsets[lane] = nibbleToOffset(mask >> (4 * lane) & 0xf)
	}

	order := int16(0)
	noMatch := true
	for lane := 0; lane < blockWidth; lane++ {
		off := offsets[lane]
		switch off {
		case msMultiMatch:
			return msMultiMatch
		case msNoMatch:
			// Unmatched lanes compare against themselves; the full
			// 32-bit check filters them out.
			off = int16(lane)
		default:
			noMatch = false
		}
		order |= off << (2 * lane)
	}
	if noMatch {
		return msNoMatch
	}
	return order
}

func nibbleToOffset(c uint16) int16 {
	switch c {
	case 0:
		return msNoMatch
	case 1:
		return 0
	case 2:
		return 1
	case 4:
		return 2
	case 8:
		return 3
	default:
		return msMultiMatch
	}
}

// byteCheckMask performs the all-pairs comparison of byte position pos
// across one block of A and one block of B, refining prev. Bit
// lane*4+off is set when byte pos of a[lane] equals byte pos of b[off].
func byteCheckMask(a, b []uint32, pos uint, prev uint16) uint16 {
	shift := 8 * pos
	var mask uint16
	for lane := 0; lane < blockWidth; lane++ {
		ab := uint8(a[lane] >> shift)
		for off := 0; off < blockWidth; off++ {
			if ab == uint8(b[off]>>shift) {
				mask |= 1 << (lane*blockWidth + off)
			}
		}
	}
	return mask & prev
}
