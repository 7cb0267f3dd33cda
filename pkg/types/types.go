// Package types defines the domain model shared by the benchmark engine,
// the result collector and the export/report collaborators.
package types

import (
	"time"
)

// Record is one discovered prime, stamped with its discovery time relative
// to the start of the run and the worker that found it.
// A Record is created once by the discovering worker and never modified.
type Record struct {
	Elapsed time.Duration `json:"elapsed"` // time since benchmark start
	Thread  uint64        `json:"thread"`  // worker identifier
	Number  uint64        `json:"number"`  // the prime
}

// Summary aggregates a full record set.
type Summary struct {
	PrimesFound  uint64 `json:"primes_found"`
	LargestFound uint64 `json:"largest_found"`
}

// WorkerStats is the local tally a worker reports when it stops.
type WorkerStats struct {
	Worker int    `json:"worker"` // worker identifier
	Tested uint64 `json:"tested"` // candidates evaluated
	Found  uint64 `json:"found"`  // candidates accepted
}

// Summarize derives the Summary of a record set.
// Stride partitioning guarantees a value appears at most once, so the
// maximum needs no tie-breaking beyond the value itself.
func Summarize(records []Record) Summary {
	s := Summary{PrimesFound: uint64(len(records))}
	for _, r := range records {
		if r.Number > s.LargestFound {
			s.LargestFound = r.Number
		}
	}
	return s
}
