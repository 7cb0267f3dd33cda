package algorithm

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// MaxSieveLimit is the largest limit Sieve accepts. The composite set for
// [0, MaxSieveLimit] occupies 128 GiB.
const MaxSieveLimit = 1 << 40

// SieveResult is prime membership over [0, limit]. Internally a bit is set
// for every composite (and for the sentinels 0 and 1), one bit per
// candidate packed into 64-bit words.
type SieveResult struct {
	limit     uint64
	composite *bitset.BitSet
}

// Sieve runs the Sieve of Eratosthenes over [0, limit].
func Sieve(limit uint64) (*SieveResult, error) {
	if limit > MaxSieveLimit {
		return nil, fmt.Errorf("%w: sieve limit %d exceeds %d", ErrNumericDomain, limit, uint64(MaxSieveLimit))
	}

	composite := bitset.New(uint(limit + 1))
	composite.Set(0)
	if limit >= 1 {
		composite.Set(1)
	}
	for i := uint64(2); i <= limit/i; i++ {
		if composite.Test(uint(i)) {
			continue
		}
		for j := i * i; j <= limit; j += i {
			composite.Set(uint(j))
		}
	}

	return &SieveResult{limit: limit, composite: composite}, nil
}

// Limit returns the inclusive upper bound the result covers.
func (s *SieveResult) Limit() uint64 {
	return s.limit
}

// IsPrime reports membership. Values beyond the limit are not covered and
// report false.
func (s *SieveResult) IsPrime(n uint64) bool {
	if n > s.limit {
		return false
	}
	return !s.composite.Test(uint(n))
}

// Count returns the number of primes in [0, limit].
func (s *SieveResult) Count() uint64 {
	return s.limit + 1 - uint64(s.composite.Count())
}

// Primes materializes the primes in ascending order.
func (s *SieveResult) Primes() []uint64 {
	primes := make([]uint64, 0, s.Count())
	for i, ok := s.composite.NextClear(0); ok && uint64(i) <= s.limit; i, ok = s.composite.NextClear(i + 1) {
		primes = append(primes, uint64(i))
	}
	return primes
}
