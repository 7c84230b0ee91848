package utils

import (
	"math/big"

	"golang.org/x/exp/constraints"
)

func Max[T constraints.Ordered](v1 T, v2 T) T {
	if v1 > v2 {
		return v1
	}
	return v2
}

func Min[T constraints.Ordered](v1 T, v2 T) T {
	if v1 < v2 {
		return v1
	}
	return v2
}

func Clamp[T constraints.Ordered](v T, low T, high T) T {
	return Min(Max(v, low), high)
}

// sums big.Ints without mutating the inputs
func SumBig(values ...*big.Int) *big.Int {
	total := new(big.Int)
	for _, v := range values {
		if v == nil {
			continue
		}
		total.Add(total, v)
	}
	return total
}
