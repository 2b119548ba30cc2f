package game

import "math"

// Number is a type statistics can be computed over.
type Number interface {
	~float32 | ~float64 | ~int | ~int64
}

// Mean ...
func Mean[T Number](nums []T) float64 {
	if len(nums) == 0 {
		return 0
	}
	var sum float64
	for _, v := range nums {
		sum += float64(v)
	}
	return sum / float64(len(nums))
}

// Variance returns the population variance of the numbers.
func Variance[T Number](nums []T) (variance float64) {
	if len(nums) == 0 {
		return 0
	}
	mean := Mean(nums)
	for _, v := range nums {
		d := float64(v) - mean
		variance += d * d
	}
	return variance / float64(len(nums))
}

// StandardDeviation ...
func StandardDeviation[T Number](nums []T) float64 {
	return math.Sqrt(Variance(nums))
}
