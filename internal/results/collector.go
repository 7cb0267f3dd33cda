// ============================================================================
// prime-bench Result Collector - Shared Record Store
// ============================================================================
//
// Package: internal/results
// File: collector.go
// Purpose: Thread-safe aggregation of discovered primes for one benchmark run
//
// Lifecycle:
//   1. NewCollector() - empty, open store
//   2. Append(record) - called by any worker, any number of times
//   3. Close()        - called once every worker has joined
//   4. Drain()        - hands the full record set to the caller, once
//
// Ordering:
//   Records keep arrival order, i.e. the order in which appends were
//   serialized by the mutex. Records of one worker stay in that worker's
//   order; records of different workers interleave arbitrarily. Callers that
//   need value order must sort.
//
// ============================================================================

package results

import (
	"errors"
	"sync"

	"github.com/ChuLiYu/prime-bench/pkg/types"
)

var (
	// ErrCollectorClosed is returned by Append after Close
	ErrCollectorClosed = errors.New("results: collector is closed")
	// ErrCollectorOpen is returned by Drain before Close
	ErrCollectorOpen = errors.New("results: collector still accepting records")
	// ErrAlreadyDrained is returned by a second Drain
	ErrAlreadyDrained = errors.New("results: collector already drained")
)

// Collector is an append-only record store shared by all workers of a run.
type Collector struct {
	mu      sync.Mutex
	records []types.Record
	closed  bool
	drained bool
}

// NewCollector returns an open, empty Collector.
func NewCollector() *Collector {
	return &Collector{records: make([]types.Record, 0, 1024)}
}

// Append adds one record. The lock covers only the slice append.
func (c *Collector) Append(r types.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrCollectorClosed
	}
	c.records = append(c.records, r)
	return nil
}

// Len returns the number of records appended so far.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// Close stops accepting records. Closing twice is a no-op.
func (c *Collector) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

// Drain transfers ownership of the record set to the caller.
func (c *Collector) Drain() ([]types.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		return nil, ErrCollectorOpen
	}
	if c.drained {
		return nil, ErrAlreadyDrained
	}
	c.drained = true

	records := c.records
	c.records = nil
	return records, nil
}
