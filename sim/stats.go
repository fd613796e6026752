// sim/stats.go
package sim

import "math"

type IntOrFloat64 interface {
	int | int64 | float64
}

// MovingAverage is an exponentially weighted moving average.
// Each update keeps Factor of the prior value and blends in 1-Factor of the sample.
type MovingAverage struct {
	Factor float64
	Value  float64
}

// Update folds sample into the average and returns the new value.
func (ma *MovingAverage) Update(sample float64) float64 {
	ma.Value = ma.Factor*ma.Value + (1-ma.Factor)*sample
	return ma.Value
}

// CalculateMean returns the arithmetic mean of data, or 0 for an empty slice.
func CalculateMean[T IntOrFloat64](data []T) float64 {
	if len(data) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range data {
		sum += float64(v)
	}
	return sum / float64(len(data))
}

// CalculateStdDev returns the population standard deviation of data.
func CalculateStdDev[T IntOrFloat64](data []T) float64 {
	if len(data) == 0 {
		return 0.0
	}
	mean := CalculateMean(data)
	sq := 0.0
	for _, v := range data {
		d := float64(v) - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(data)))
}

// Sum returns the sum of data.
func Sum[T IntOrFloat64](data []T) T {
	var total T
	for _, v := range data {
		total += v
	}
	return total
}
