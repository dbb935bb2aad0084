// Package utils contains small numeric helpers shared by the log packages.
package utils

import "math"

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Float64AlmostEqual reports whether a and b differ by at most epsilon.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

// AngleDiffRad returns the absolute difference between two angles in radians, in [0, π].
func AngleDiffRad(a1, a2 float64) float64 {
	d := math.Mod(math.Abs(a1-a2), 2*math.Pi)
	return math.Pi - math.Abs(d-math.Pi)
}
