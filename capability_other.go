//go:build !amd64 && !arm64

package setintersect

func init() {
	initAlgorithm()
}
