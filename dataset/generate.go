package dataset

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// PairInfo describes a synthetic pair of sorted sets. Size and Skew are
// log scaled; Density and Selectivity are per mille so that sweeps can
// step them as integers.
type PairInfo struct {
	// Size is the log2 length of the smaller set.
	Size uint32
	// Skew makes the larger set 2^(Skew-1) times the smaller one.
	// 1 means both sets are the same length.
	Skew uint32
	// Density is the fraction of the value universe the larger set
	// covers, in per mille. Higher density forces more low-byte
	// collisions.
	Density uint32
	// Selectivity is the fraction of the smaller set shared with the
	// larger one, in per mille.
	Selectivity uint32
}

// Validate checks the ranges the generator arithmetic relies on.
func (info PairInfo) Validate() error {
	if info.Skew == 0 {
		return fmt.Errorf("dataset: skew must be at least 1, got %d", info.Skew)
	}
	if info.Density == 0 || info.Density > 1000 {
		return fmt.Errorf("dataset: density %d out of range 1..1000", info.Density)
	}
	if info.Selectivity > 1000 {
		return fmt.Errorf("dataset: selectivity %d out of range 0..1000", info.Selectivity)
	}
	if logLarge := info.Size + info.Skew - 1; logLarge > 30 {
		return fmt.Errorf("dataset: size %d with skew %d exceeds the 2^30 set limit", info.Size, info.Skew)
	}
	largeLen := 1 << (info.Size + info.Skew - 1)
	if float64(largeLen)/(float64(info.Density)/1000.0) > math.MaxUint32 {
		return fmt.Errorf("dataset: density %d spreads %d elements past the uint32 universe", info.Density, largeLen)
	}
	return nil
}

// GeneratePair builds two sorted duplicate-free sets matching info as
// closely as the universe allows. When the universe is too small for the
// requested selectivity, the overlap grows to the forced minimum.
// Deterministic for a given rng state. Panics when info fails Validate;
// callers taking user input should Validate first.
func GeneratePair(rng *rand.Rand, info PairInfo) (small, large []uint32) {
	if err := info.Validate(); err != nil {
		panic(err)
	}

	density := float64(info.Density) / 1000.0
	selectivity := float64(info.Selectivity) / 1000.0

	smallLen := 1 << info.Size
	largeLen := smallLen << (info.Skew - 1)
	max := int(float64(largeLen) / density)

	sharedCount := int(selectivity * float64(smallLen))
	genCount := smallLen + largeLen - sharedCount

	// Pigeonhole: with only max distinct values available the two sets
	// must share at least smallLen+largeLen-max elements.
	if genCount > max {
		sharedCount = smallLen + largeLen - max
		genCount = max
	}

	items := sampleDistinct(rng, genCount, max, density)

	small = make([]uint32, 0, smallLen)
	large = make([]uint32, 0, largeLen)
	small = append(small, items[:sharedCount]...)
	large = append(large, items[:sharedCount]...)
	small = append(small, items[sharedCount:smallLen]...)
	large = append(large, items[smallLen:genCount]...)

	sort.Slice(small, func(i, j int) bool { return small[i] < small[j] })
	sort.Slice(large, func(i, j int) bool { return large[i] < large[j] })
	return small, large
}

// sampleDistinct draws n distinct values from [0, max). Sparse draws use
// rejection sampling; dense ones shuffle the whole universe instead.
func sampleDistinct(rng *rand.Rand, n, max int, density float64) []uint32 {
	if density >= 0.2 {
		everything := make([]uint32, max)
		for i := range everything {
			everything[i] = uint32(i)
		}
		rng.Shuffle(max, func(i, j int) {
			everything[i], everything[j] = everything[j], everything[i]
		})
		return everything[:n]
	}

	seen := make(map[uint32]struct{}, n)
	items := make([]uint32, 0, n)
	for len(items) < n {
		v := uint32(rng.Intn(max))
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		items = append(items, v)
	}
	rng.Shuffle(n, func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
	return items
}
