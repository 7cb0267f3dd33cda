package algorithm

import "math"

// IsPrimeTrialDivision tests odd divisors 3, 5, 7, ... while d*d <= n.
// The bound is evaluated as d <= n/d so it cannot overflow near 2^64.
func IsPrimeTrialDivision(n uint64) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for d := uint64(3); d <= n/d; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// IsPrimeTrialDivisionSqrt runs the same divisor search with the bound
// taken from a single floating-point square root. float64 cannot represent
// every uint64, so the loop checks one unit past the truncated root.
func IsPrimeTrialDivisionSqrt(n uint64) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	bound := uint64(math.Sqrt(float64(n))) + 1
	for d := uint64(3); d <= bound && d < n; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// IsPrimeTrialDivisionNewton runs the divisor search up to the exact
// integer square root from ISqrt.
func IsPrimeTrialDivisionNewton(n uint64) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	root := ISqrt(n)
	for d := uint64(3); d <= root; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// ISqrt returns floor(sqrt(n)) using integer Newton iteration, exact for
// every uint64. Starting above the root, the iterates decrease strictly
// until they reach the floor.
func ISqrt(n uint64) uint64 {
	if n < 2 {
		return n
	}
	x := n
	y := n/2 + n&1 // (n+1)/2 without overflowing at MaxUint64
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}
