//go:build arm64

package setintersect

import "golang.org/x/sys/cpu"

func init() {
	hasASIMD = cpu.ARM64.HasASIMD
	initAlgorithm()
}
