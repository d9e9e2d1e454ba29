package utils

import "cmp"

// FindIndex returns the position of item in slice, or -1
func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// Max returns the largest element of a non-empty slice
func Max[T cmp.Ordered](slice []T) T {
	max := slice[0]
	for _, v := range slice[1:] {
		if v > max {
			max = v
		}
	}
	return max
}
