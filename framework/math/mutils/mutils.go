package mutils

import (
	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

func Clamp[T Number](x, minV, maxV T) T {
	return min(maxV, max(minV, x))
}

func Lerp[T constraints.Float](min, max, t T) T {
	return min + (max-min)*t
}

// ReverseLerp returns where x lies between min and max, clamped to [0, 1].
func ReverseLerp[T constraints.Float](x, min, max T) T {
	if max == min {
		return 0
	}

	return Clamp((x-min)/(max-min), 0, 1)
}

func Abs[T constraints.Signed | constraints.Float](a T) T {
	if a < 0 {
		return -a
	}

	return a
}

func Signum[T constraints.Signed | constraints.Float](a T) T {
	if a == 0 {
		return 0
	}

	if a > 0 {
		return 1
	}

	return -1
}
