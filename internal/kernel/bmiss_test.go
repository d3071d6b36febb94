package kernel

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Long miss runs flip the advance policy into galloping; make sure no
// match near the end of a skipped region is lost.
func TestBMissGallopDoesNotOvershoot(t *testing.T) {
	// A is dense and low, B sits far above except for one shared run.
	a := make([]uint32, 0, 256)
	for v := uint32(0); v < 256; v++ {
		a = append(a, v)
	}
	b := []uint32{200, 250, 254, 255, 100000, 100001, 100002, 100003, 100004, 100005, 100006, 100007}
	want := []uint32{200, 250, 254, 255}

	assert.Equal(t, want, runPlain(t, BMiss, a, b))
	assert.Equal(t, want, runPlain(t, BMissSTTNI, a, b))
}

func TestBMissInterleavedMissRuns(t *testing.T) {
	// Clustered sets with wide gaps: every cluster boundary produces a
	// run of missed block pairs on one side.
	var a, b []uint32
	for c := uint32(0); c < 20; c++ {
		base := c * 100000
		for i := uint32(0); i < 40; i++ {
			a = append(a, base+i)
		}
		if c%2 == 0 {
			for i := uint32(0); i < 40; i++ {
				b = append(b, base+2*i)
			}
		}
	}
	want := refIntersect(a, b)

	assert.Equal(t, want, runPlain(t, BMiss, a, b))
	assert.Equal(t, want, runPlain(t, BMissSTTNI, a, b))
}

// The 16-bit candidate mask admits false positives across 64k strides;
// the confirm step must reject them.
func TestBMissSTTNICandidateFalsePositives(t *testing.T) {
	a := []uint32{0x00010005, 0x00010105, 0x00010205, 0x00010305, 0x00010405, 0x00010505, 0x00010605, 0x00010705}
	b := []uint32{0x00020005, 0x00020105, 0x00020205, 0x00020305, 0x00020405, 0x00020505, 0x00020605, 0x00010705 + 0x10000}

	assert.Empty(t, runPlain(t, BMissSTTNI, a, b))
	assert.Empty(t, runPlain(t, BMiss, a, b))
}

func TestBMissRandomAgainstMerge(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for trial := 0; trial < 50; trial++ {
		a := genSorted(rng, 1+rng.Intn(500), 1<<14)
		b := genSorted(rng, 1+rng.Intn(500), 1<<14)
		want := refIntersect(a, b)

		assert.Equal(t, want, runPlain(t, BMiss, a, b))
		assert.Equal(t, want, runPlain(t, BMissSTTNI, a, b))
	}
}

func BenchmarkBMiss(b *testing.B) {
	benchmarkPlain(b, BMiss)
}

func BenchmarkBMissSTTNI(b *testing.B) {
	benchmarkPlain(b, BMissSTTNI)
}

func BenchmarkMerge(b *testing.B) {
	benchmarkPlain(b, Merge)
}
