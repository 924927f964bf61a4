package model

import "math"

// epsilon is the smallest x such that 1+x != 1, added before scaling so that
// values like 1.005 round the way a person would expect.
const epsilon = 2.220446049250313e-16

// roundHalfUp rounds to the nearest integer, halves towards +Inf.
func roundHalfUp(x float64) float64 {
	f := math.Floor(x)
	if x-f >= 0.5 {
		return f + 1
	}
	return f
}

// Round rounds n to a multiple of k at the given decimal resolution:
// n is scaled by 10^trunc(resolution), rounded to a multiple of k, rounded
// again and scaled back. Both rounding steps are load-bearing; report
// figures depend on reproducing them exactly.
func Round(n, k, resolution float64) float64 {
	precision := math.Pow(10, math.Trunc(resolution))
	return roundHalfUp(roundHalfUp((n+epsilon)*precision/k)*k) / precision
}

// Percent returns pct percent of value.
func Percent(value, pct float64) float64 {
	return Round(value*pct/100, 1, 3)
}

// ToPercent returns value as a percentage of whole.
func ToPercent(value, whole float64) float64 {
	return Round(value*100/whole, 1, 3)
}

// Divide returns a/b rounded to three decimals.
func Divide(a, b float64) float64 {
	return Round(a/b, 1, 3)
}

// Sum adds numbers left to right, rounding the running total after every
// addition. The result depends on the order of numbers.
func Sum(numbers []float64) float64 {
	var acc float64
	for _, n := range numbers {
		acc = Round(acc+n, 1, 3)
	}
	return acc
}
