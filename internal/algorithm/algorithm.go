// ============================================================================
// prime-bench Algorithms - Primality and Sieve Strategies
// ============================================================================
//
// Package: internal/algorithm
// File: algorithm.go
// Purpose: Closed set of algorithm identifiers and the function shapes bound to them
//
// Strategies:
//   Primality (func(uint64) bool):
//   - trial-division          odd divisors while d*d <= n
//   - trial-division-sqrt     bound from one float64 square root
//   - trial-division-newton   bound from an exact integer square root
//   - miller-rabin            deterministic over uint64 (12 witnesses)
//   - aks                     Agrawal-Kayal-Saxena, slowest by far
//
//   Sieve (func(uint64) (*SieveResult, error)):
//   - sieve-of-eratosthenes   bit-packed marking over [0, limit]
//
// Every primality strategy is total over uint64: no input panics, 0 and 1
// are composite, 2 and 3 are prime.
//
// ============================================================================

package algorithm

// ID identifies one algorithm. The set is closed; dispatch goes through the
// Registry table, never through name strings in hot paths.
type ID int

const (
	TrialDivision ID = iota + 1
	TrialDivisionSqrt
	TrialDivisionNewton
	MillerRabin
	AKS
	SieveOfEratosthenes
)

// Kind groups algorithms by the contract they implement.
type Kind int

const (
	KindPrimality Kind = iota + 1
	KindSieve
)

func (k Kind) String() string {
	switch k {
	case KindPrimality:
		return "primality"
	case KindSieve:
		return "sieve"
	default:
		return "unknown"
	}
}

// PrimalityFunc reports whether n is prime.
type PrimalityFunc func(n uint64) bool

// SieveFunc computes prime membership over [0, limit].
type SieveFunc func(limit uint64) (*SieveResult, error)

var idNames = map[ID]string{
	TrialDivision:       "trial-division",
	TrialDivisionSqrt:   "trial-division-sqrt",
	TrialDivisionNewton: "trial-division-newton",
	MillerRabin:         "miller-rabin",
	AKS:                 "aks",
	SieveOfEratosthenes: "sieve-of-eratosthenes",
}

// String returns the canonical command-line name.
func (id ID) String() string {
	if name, ok := idNames[id]; ok {
		return name
	}
	return "unknown"
}
