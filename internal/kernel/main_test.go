package kernel

import (
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"sort"
	"testing"
)

// TestMain prints platform diagnostics so CI runs identify the
// environment the kernels were exercised on.
func TestMain(m *testing.M) {
	fmt.Printf("=== Kernel Diagnostics ===\n")
	fmt.Printf("GOOS=%s GOARCH=%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Printf("==========================\n\n")

	os.Exit(m.Run())
}

// refIntersect is the plain two-pointer oracle the kernels are checked
// against. Deliberately written independently of Merge.
func refIntersect(a, b []uint32) []uint32 {
	out := []uint32{}
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case b[j] < a[i]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

// genSorted samples n distinct values below max, sorted ascending.
func genSorted(rng *rand.Rand, n int, max uint32) []uint32 {
	seen := make(map[uint32]struct{}, n)
	for len(seen) < n {
		seen[rng.Uint32()%max] = struct{}{}
	}
	out := make([]uint32, 0, n)
	for v := range seen {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
