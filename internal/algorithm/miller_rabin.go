package algorithm

import "math/bits"

// Witnesses is the fixed base set for the deterministic Miller-Rabin test.
// Testing against all of them classifies every n < 2^64 correctly.
var Witnesses = [12]uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37}

// IsPrimeMillerRabin is the strong probable-prime test over Witnesses.
func IsPrimeMillerRabin(n uint64) bool {
	if n < 2 {
		return false
	}
	for _, w := range Witnesses {
		if n == w {
			return true
		}
		if n%w == 0 {
			return false
		}
	}

	// n-1 = d * 2^s with d odd
	d := n - 1
	s := bits.TrailingZeros64(d)
	d >>= uint(s)

	for _, a := range Witnesses {
		if a >= n {
			continue
		}
		if !strongProbablePrime(n, a, d, s) {
			return false
		}
	}
	return true
}

// strongProbablePrime reports whether a^d ≡ 1 or a^(d*2^r) ≡ -1 (mod n)
// for some 0 <= r < s.
func strongProbablePrime(n, a, d uint64, s int) bool {
	x := powMod(a, d, n)
	if x == 1 || x == n-1 {
		return true
	}
	for r := 1; r < s; r++ {
		x = mulMod(x, x, n)
		if x == n-1 {
			return true
		}
	}
	return false
}

// mulMod returns a*b mod m through a 128-bit intermediate product.
func mulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return bits.Rem64(hi, lo, m)
}

// addMod returns a+b mod m for a, b < m.
func addMod(a, b, m uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 || sum >= m {
		sum -= m
	}
	return sum
}

// powMod returns base^exp mod m.
func powMod(base, exp, m uint64) uint64 {
	if m == 1 {
		return 0
	}
	result := uint64(1)
	base %= m
	for exp > 0 {
		if exp&1 == 1 {
			result = mulMod(result, base, m)
		}
		exp >>= 1
		if exp > 0 {
			base = mulMod(base, base, m)
		}
	}
	return result
}
