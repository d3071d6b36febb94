package setintersect

import (
	"os"
	"strings"
)

// Algorithm identifies an intersection kernel.
type Algorithm uint8

const (
	// QFilter is revision 2 of the block-4 lookup-table kernel (default).
	QFilter Algorithm = iota
	// QFilterV1 is the original QFilter revision.
	QFilterV1
	// BMiss is the block-4 miss-counting block-skip merge.
	BMiss
	// BMissSTTNI is the block-8 wide-compare BMiss variant.
	BMissSTTNI
	// Merge is the scalar branchless reference merge.
	Merge
	// Roaring intersects through roaring bitmaps; it allocates and exists
	// as an independent cross-check, not as a hot-path kernel.
	Roaring
)

// String returns the string representation of an Algorithm.
func (a Algorithm) String() string {
	switch a {
	case QFilter:
		return "qfilter"
	case QFilterV1:
		return "qfilter-v1"
	case BMiss:
		return "bmiss"
	case BMissSTTNI:
		return "bmiss-sttni"
	case Merge:
		return "merge"
	case Roaring:
		return "roaring"
	default:
		return "unknown"
	}
}

// ParseAlgorithm parses a string into an Algorithm value.
func ParseAlgorithm(s string) (Algorithm, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "qfilter", "qfilter-v2":
		return QFilter, true
	case "qfilter-v1":
		return QFilterV1, true
	case "bmiss":
		return BMiss, true
	case "bmiss-sttni", "sttni":
		return BMissSTTNI, true
	case "merge":
		return Merge, true
	case "roaring":
		return Roaring, true
	default:
		return QFilter, false
	}
}

// Algorithms lists every selectable algorithm.
func Algorithms() []Algorithm {
	return []Algorithm{QFilter, QFilterV1, BMiss, BMissSTTNI, Merge, Roaring}
}

// Package-level state - initialized once at package init.
// No mutex needed: Go guarantees init() runs before any other code.
var (
	// activeAlgorithm is the kernel used by Intersect/IntersectBSR.
	activeAlgorithm Algorithm

	// hasOverride is true if SETINTERSECT_ALGO was set.
	hasOverride bool

	// CPU feature flags (set by platform-specific init). The kernels are
	// portable Go; the flags feed diagnostics and keep the selection hook
	// in place for platform-specific kernel revisions.
	hasSSE42 bool
	hasAVX2  bool
	hasASIMD bool
)

// initAlgorithm is called from platform-specific init functions after
// CPU features are detected.
func initAlgorithm() {
	if override := os.Getenv("SETINTERSECT_ALGO"); override != "" {
		if algo, ok := ParseAlgorithm(override); ok {
			hasOverride = true
			activeAlgorithm = algo
			return
		}
	}
	activeAlgorithm = QFilter
}

// ActiveAlgorithm returns the algorithm Intersect dispatches to.
func ActiveAlgorithm() Algorithm {
	return activeAlgorithm
}

// IsOverridden returns true if SETINTERSECT_ALGO was set.
func IsOverridden() bool {
	return hasOverride
}

// HasSSE42 returns true if x86-64 SSE4.2 is available.
func HasSSE42() bool {
	return hasSSE42
}

// HasAVX2 returns true if x86-64 AVX2 is available.
func HasAVX2() bool {
	return hasAVX2
}

// HasASIMD returns true if ARM64 NEON is available.
func HasASIMD() bool {
	return hasASIMD
}
