package util

import (
	"golang.org/x/exp/constraints"
)

// Clamp limits v to the range [lo, hi].
func Clamp[T constraints.Integer | constraints.Float](v T, lo T, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ScaleToDepth rescales a sample from one bit depth to another with
// rounding, e.g. 16 bit decoder output back to the 10 bit source depth.
func ScaleToDepth[T constraints.Unsigned](v T, fromDepth int, toDepth int) T {
	if fromDepth == toDepth {
		return v
	}
	fromMax := uint64(1)<<uint(fromDepth) - 1
	toMax := uint64(1)<<uint(toDepth) - 1
	return T((uint64(v)*toMax + fromMax/2) / fromMax)
}

// MaxValueForDepth returns 2^depth - 1.
func MaxValueForDepth(depth int) uint32 {
	return uint32(1)<<uint(depth) - 1
}

func IfThenElse[T any](condition bool, a T, b T) T {
	if condition {
		return a
	}
	return b
}
