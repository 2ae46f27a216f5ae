// Package stats provides the robust numeric primitives the analytics
// components share: median, MAD, standard deviations and rolling averages.
// All functions treat degenerate input (empty, single element) as zero
// rather than an error; a new item with no history is steady state.
package stats

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean, 0 for empty input
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// PopulationStddev returns the population standard deviation computed with a
// two-pass mean/variance sweep. The naive avg(x²)−avg(x)² shortcut cancels
// catastrophically on large ledgers. Returns 0 for fewer than two values.
func PopulationStddev(xs []float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}
	mean := Mean(xs)
	sumSq := 0.0
	for _, x := range xs {
		d := x - mean
		sumSq += d * d
	}
	variance := sumSq / float64(n)
	return math.Sqrt(math.Max(0, variance))
}

// SampleStddev returns the sample standard deviation (n−1 divisor), 0 for
// fewer than two values.
func SampleStddev(xs []float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}
	mean := Mean(xs)
	sumSq := 0.0
	for _, x := range xs {
		d := x - mean
		sumSq += d * d
	}
	variance := sumSq / float64(n-1)
	return math.Sqrt(math.Max(0, variance))
}

// Median returns the middle element, or the mean of the two middles for even
// length. Empty input returns 0.
func Median(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, xs)
	sort.Float64s(sorted)
	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// MAD returns the median absolute deviation from the given median
func MAD(xs []float64, median float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	devs := make([]float64, len(xs))
	for i, x := range xs {
		devs[i] = math.Abs(x - median)
	}
	return Median(devs)
}

// RollingAverage computes a centered rolling average over a contiguous
// calendar series. For index i the window is [i-radius, i+radius] clipped to
// the series bounds; the divisor is the number of days in the clipped window,
// not the number of non-zero entries. Callers must fill calendar gaps with
// zero values before calling.
func RollingAverage(series []float64, radius int) []float64 {
	if radius < 0 {
		radius = 0
	}
	out := make([]float64, len(series))
	for i := range series {
		lo := i - radius
		if lo < 0 {
			lo = 0
		}
		hi := i + radius
		if hi > len(series)-1 {
			hi = len(series) - 1
		}
		sum := 0.0
		for j := lo; j <= hi; j++ {
			sum += series[j]
		}
		out[i] = sum / float64(hi-lo+1)
	}
	return out
}
