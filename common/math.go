package common

import "math"

// Epsilon is the tolerance used when comparing lengths and projections.
const Epsilon = 1e-9

// UnitTolerance is how far a normal's length may stray from 1 and still be
// treated as unit length.
const UnitTolerance = 1e-6

// NearZero reports whether |v| is within Epsilon of zero.
func NearZero(v float64) bool {
	return math.Abs(v) <= Epsilon
}

func NearlyEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// IsUnit reports whether length is 1 within UnitTolerance.
func IsUnit(length float64) bool {
	return NearlyEqual(length, 1, UnitTolerance)
}

// IsFinite is false for NaN and both infinities.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
