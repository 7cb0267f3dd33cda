package algorithm

// ============================================================================
// Primality Strategy Tests
// Purpose: Reference classification, cross-strategy agreement, integer sqrt
// ============================================================================

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

type knownCase struct {
	n     uint64
	prime bool
	fast  bool // trial division finishes quickly
	aks   bool // small enough for the polynomial stage
}

var knownCases = []knownCase{
	{0, false, true, true},
	{1, false, true, true},
	{2, true, true, true},
	{3, true, true, true},
	{4, false, true, true},
	{5, true, true, true},
	{9, false, true, true},
	{25, false, true, true},
	{49, false, true, true},
	{97, true, true, true},
	{121, false, true, true},
	{561, false, true, true},  // Carmichael number
	{2047, false, true, true}, // strong pseudoprime to base 2
	{7919, true, true, true},
	{65537, true, true, true},
	{1000000007, true, true, false},
	{2147483647, true, true, false},
	{3215031751, false, true, false}, // strong pseudoprime to bases 2, 3, 5, 7
	{4293001441, false, true, false}, // 65521^2
	{4294967291, true, true, false},
	{4294967297, false, true, false},          // 641 * 6700417
	{3825123056546413051, false, true, false}, // strong pseudoprime to bases 2..23
	{2305843009213693951, true, false, false}, // 2^61 - 1
	{18446744073709551557, true, false, false},
	{math.MaxUint64, false, true, false},
}

var trialDivisionVariants = map[string]PrimalityFunc{
	"trial-division":        IsPrimeTrialDivision,
	"trial-division-sqrt":   IsPrimeTrialDivisionSqrt,
	"trial-division-newton": IsPrimeTrialDivisionNewton,
}

func TestKnownValues_TrialDivision(t *testing.T) {
	for name, isPrime := range trialDivisionVariants {
		for _, tc := range knownCases {
			if !tc.fast {
				continue
			}
			assert.Equal(t, tc.prime, isPrime(tc.n), "%s(%d)", name, tc.n)
		}
	}
}

func TestKnownValues_MillerRabin(t *testing.T) {
	for _, tc := range knownCases {
		assert.Equal(t, tc.prime, IsPrimeMillerRabin(tc.n), "miller-rabin(%d)", tc.n)
	}
}

func TestKnownValues_AKS(t *testing.T) {
	for _, tc := range knownCases {
		if !tc.aks {
			continue
		}
		assert.Equal(t, tc.prime, IsPrimeAKS(tc.n), "aks(%d)", tc.n)
	}
}

func TestAKSDeterministic(t *testing.T) {
	first := IsPrimeAKS(97)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, IsPrimeAKS(97))
	}
	assert.True(t, first)
}

func TestCrossAlgorithmAgreement(t *testing.T) {
	for n := uint64(0); n <= 100000; n++ {
		want := IsPrimeMillerRabin(n)
		for name, isPrime := range trialDivisionVariants {
			if got := isPrime(n); got != want {
				t.Fatalf("%s(%d) = %v, miller-rabin says %v", name, n, got, want)
			}
		}
	}
}

func TestCrossAlgorithmAgreement_AKS(t *testing.T) {
	for n := uint64(0); n <= 400; n++ {
		assert.Equal(t, IsPrimeTrialDivision(n), IsPrimeAKS(n), "aks(%d)", n)
	}
}

func TestIsPerfectPower(t *testing.T) {
	powers := []uint64{4, 8, 9, 27, 32, 125, 243, 1 << 40, 3486784401, 18446744030759878681}
	for _, n := range powers {
		assert.True(t, isPerfectPower(n), "%d is a perfect power", n)
	}
	for _, n := range []uint64{2, 3, 5, 6, 10, 12, 97, 1000000007, math.MaxUint64} {
		assert.False(t, isPerfectPower(n), "%d is not a perfect power", n)
	}
}

// ============================================================================
// Integer square root
// ============================================================================

func TestISqrtSmall(t *testing.T) {
	want := []uint64{0, 1, 1, 1, 2, 2, 2, 2, 2, 3, 3}
	for n, w := range want {
		assert.Equal(t, w, ISqrt(uint64(n)), "ISqrt(%d)", n)
	}
}

func TestISqrtNearPerfectSquares(t *testing.T) {
	check := func(k uint64) {
		sq := k * k
		if got := ISqrt(sq); got != k {
			t.Fatalf("ISqrt(%d) = %d, want %d", sq, got, k)
		}
		if got := ISqrt(sq - 1); got != k-1 {
			t.Fatalf("ISqrt(%d) = %d, want %d", sq-1, got, k-1)
		}
		if got := ISqrt(sq + 1); got != k {
			t.Fatalf("ISqrt(%d) = %d, want %d", sq+1, got, k)
		}
	}
	for k := uint64(1); k <= 5000; k++ {
		check(k)
	}
	for k := uint64(5000); k <= 1000000; k += 997 {
		check(k)
	}
	check(1000000)
}

func TestISqrtMatchesFloat(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200000; i++ {
		n := uint64(rng.Int63n(1_000_000_000_000))
		want := uint64(math.Sqrt(float64(n)))
		assert.Equal(t, want, ISqrt(n), "ISqrt(%d)", n)
	}
}

func TestISqrtExtremes(t *testing.T) {
	assert.Equal(t, uint64(4294967295), ISqrt(math.MaxUint64))
	assert.Equal(t, uint64(4294967295), ISqrt(4294967295*4294967295))
	assert.Equal(t, uint64(4294967294), ISqrt(4294967295*4294967295-1))
	assert.Equal(t, uint64(1<<31), ISqrt(1<<62))
}

// ============================================================================
// Modular arithmetic
// ============================================================================

func TestMulModNoOverflow(t *testing.T) {
	m := uint64(18446744073709551557)
	a := m - 1 // ≡ -1
	assert.Equal(t, uint64(1), mulMod(a, a, m))
	assert.Equal(t, m-2, addMod(m-1, m-1, m))
	assert.Equal(t, uint64(1), powMod(2, m-1, m), "Fermat for a 64-bit prime")
	assert.Equal(t, uint64(0), powMod(5, 3, 1))
}
