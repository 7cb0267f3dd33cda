package algorithm

import (
	"math"
	"math/bits"
)

// IsPrimeAKS is the Agrawal-Kayal-Saxena test. It is exact and by far the
// slowest strategy: the polynomial stage costs O(r^2 log n) per witness a.
func IsPrimeAKS(n uint64) bool {
	if n < 2 {
		return false
	}
	if n <= 3 {
		return true
	}
	if n%2 == 0 || n%3 == 0 {
		return false
	}
	if isPerfectPower(n) {
		return false
	}

	logN := math.Log2(float64(n))
	r := smallestOrderModulus(n, uint64(logN*logN))

	for a := uint64(2); a <= r && a < n; a++ {
		if g := gcd(a, n); g > 1 && g < n {
			return false
		}
	}
	if n <= r {
		return true
	}

	limit := uint64(math.Floor(2 * math.Sqrt(float64(r)) * logN))
	if limit >= n {
		limit = n - 1
	}
	ring := newPolyRing(int(r), n)
	for a := uint64(1); a <= limit; a++ {
		if !ring.congruent(a) {
			return false
		}
	}
	return true
}

// smallestOrderModulus returns the smallest r coprime to n whose
// multiplicative order of n modulo r exceeds maxOrder.
func smallestOrderModulus(n, maxOrder uint64) uint64 {
	for r := uint64(2); ; r++ {
		if gcd(n, r) != 1 {
			continue
		}
		if orderExceeds(n%r, r, maxOrder) {
			return r
		}
	}
}

// orderExceeds reports whether no k in [1, maxOrder] has base^k ≡ 1 (mod r).
func orderExceeds(base, r, maxOrder uint64) bool {
	cur := uint64(1)
	for k := uint64(1); k <= maxOrder; k++ {
		cur = mulMod(cur, base, r)
		if cur == 1 {
			return false
		}
	}
	return true
}

// isPerfectPower reports whether n = a^b for some a > 1, b > 1.
func isPerfectPower(n uint64) bool {
	if n < 4 {
		return false
	}
	if root := ISqrt(n); root*root == n {
		return true
	}
	maxExp := 63 - bits.LeadingZeros64(n)
	for b := 3; b <= maxExp; b++ {
		guess := uint64(math.Round(math.Pow(float64(n), 1/float64(b))))
		for _, c := range []uint64{guess - 1, guess, guess + 1} {
			if c < 2 {
				continue
			}
			if p, ok := checkedPow(c, b); ok && p == n {
				return true
			}
		}
	}
	return false
}

// checkedPow returns base^exp, or false if the result overflows uint64.
func checkedPow(base uint64, exp int) (uint64, bool) {
	result := uint64(1)
	for exp > 0 {
		if exp&1 == 1 {
			hi, lo := bits.Mul64(result, base)
			if hi != 0 {
				return 0, false
			}
			result = lo
		}
		exp >>= 1
		if exp > 0 {
			hi, lo := bits.Mul64(base, base)
			if hi != 0 {
				return 0, false
			}
			base = lo
		}
	}
	return result, true
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// polyRing computes in Z_n[X]/(X^r - 1). Polynomials are dense coefficient
// slices of length r.
type polyRing struct {
	r    int
	n    uint64
	lazy bool // r*(n-1)^2 fits in uint64: accumulate products, reduce once
	res  []uint64
	tmp  []uint64
}

func newPolyRing(r int, n uint64) *polyRing {
	lazy := false
	if n <= 1<<32 {
		sq := (n - 1) * (n - 1)
		lazy = sq == 0 || sq <= math.MaxUint64/uint64(r)
	}
	return &polyRing{
		r:    r,
		n:    n,
		lazy: lazy,
		res:  make([]uint64, r),
		tmp:  make([]uint64, r),
	}
}

// congruent checks (X + a)^n ≡ X^n + a in the ring.
func (p *polyRing) congruent(a uint64) bool {
	res, tmp := p.res, p.tmp
	for i := range res {
		res[i] = 0
	}
	res[0] = 1

	// left-to-right binary exponentiation; multiplying by (X + a) is linear
	for bit := 63 - bits.LeadingZeros64(p.n); bit >= 0; bit-- {
		p.square(tmp, res)
		res, tmp = tmp, res
		if (p.n>>uint(bit))&1 == 1 {
			p.mulLinear(tmp, res, a)
			res, tmp = tmp, res
		}
	}

	shift := int(p.n % uint64(p.r))
	for i, c := range res {
		var want uint64
		if i == 0 {
			want = a % p.n
		}
		if i == shift {
			want = addMod(want, 1, p.n)
		}
		if c != want {
			return false
		}
	}
	return true
}

// square sets dst = src^2. dst must not alias src.
func (p *polyRing) square(dst, src []uint64) {
	for i := range dst {
		dst[i] = 0
	}
	r := p.r
	if p.lazy {
		for i, ai := range src {
			if ai == 0 {
				continue
			}
			k := i
			for _, bj := range src {
				dst[k] += ai * bj
				if k++; k == r {
					k = 0
				}
			}
		}
		for i := range dst {
			dst[i] %= p.n
		}
		return
	}
	for i, ai := range src {
		if ai == 0 {
			continue
		}
		k := i
		for _, bj := range src {
			if bj != 0 {
				dst[k] = addMod(dst[k], mulMod(ai, bj, p.n), p.n)
			}
			if k++; k == r {
				k = 0
			}
		}
	}
}

// mulLinear sets dst = src * (X + a). dst must not alias src.
func (p *polyRing) mulLinear(dst, src []uint64, a uint64) {
	r := p.r
	for i := range dst {
		prev := src[(i+r-1)%r]
		dst[i] = addMod(mulMod(a, src[i], p.n), prev, p.n)
	}
}
