// ============================================================================
// prime-bench Worker - Stride Search Unit
// ============================================================================
//
// Package: internal/worker
// File: worker.go
// Function: One search loop over a disjoint slice of the number line; each
//           Worker runs in its own goroutine
//
// How it works:
//   Worker k of W owns the candidates start+k, start+k+W, start+k+2W, ...
//   and repeats until the shared Canceler fires:
//   1. Check the stop signal
//   2. Evaluate the candidate with the predicate
//   3. On a hit, build a Record and hand it to the Sink
//   4. Advance by W (carry-checked)
//
// Execution Model:
//   ┌─────────────────────────────────────┐
//   │  Worker Goroutine                   │
//   │  ┌──────────────────────────────┐   │
//   │  │ for !stop.Done()             │   │
//   │  │   ├─ predicate(n)            │   │
//   │  │   ├─ sink.Append(record)     │   │
//   │  │   └─ n += stride             │   │
//   │  └──────────────────────────────┘   │
//   └─────────────────────────────────────┘
//
// Cancellation:
//   Cooperative only. A worker notices the stop signal between candidates,
//   so the extra latency after a deadline is at most one predicate call.
//
// Error Handling:
//   - Stride overflow: ErrArithmeticOverflow (fatal for the run)
//   - Panic inside the predicate: recovered into ErrWorkerPanic
//   - Sink rejection: returned as is
//
// ============================================================================

package worker

import (
	"fmt"
	"log/slog"
	"math/bits"
	"time"

	"github.com/ChuLiYu/prime-bench/pkg/types"
)

var log = slog.Default()

// Worker represents one search loop
type Worker struct {
	id       int       // worker identifier, also the Record thread id
	next     uint64    // next candidate to evaluate (worker-local)
	stride   uint64    // distance between this worker's candidates
	overflow bool      // the first candidate itself was not representable
	pred     Predicate // hit condition
	sink     Sink      // record destination
	stop     Canceler  // shared stop signal
}

// newWorker creates worker id of a pool of size stride whose first
// candidate overall is start.
func newWorker(id int, start, stride uint64, pred Predicate, sink Sink, stop Canceler) *Worker {
	first, carry := bits.Add64(start, uint64(id), 0)
	return &Worker{
		id:       id,
		next:     first,
		stride:   stride,
		overflow: carry != 0,
		pred:     pred,
		sink:     sink,
		stop:     stop,
	}
}

// Run is the main loop of Worker. origin is the run's start instant; every
// Record's Elapsed is measured from it. The returned stats are valid even
// when err is not nil.
func (w *Worker) Run(origin time.Time) (stats types.WorkerStats, err error) {
	stats.Worker = w.id

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: worker %d at candidate %d: %v", ErrWorkerPanic, w.id, w.next, r)
		}
	}()

	if w.overflow {
		return stats, fmt.Errorf("%w: worker %d has no representable first candidate", ErrArithmeticOverflow, w.id)
	}

	for {
		if w.stop.Done() {
			log.Info("Worker stopping", "worker", w.id, "found", stats.Found, "tested", stats.Tested)
			return stats, nil
		}

		n := w.next
		if w.pred(n) {
			record := types.Record{
				Elapsed: time.Since(origin),
				Thread:  uint64(w.id),
				Number:  n,
			}
			if err := w.sink.Append(record); err != nil {
				return stats, fmt.Errorf("worker %d: %w", w.id, err)
			}
			stats.Found++
		}
		stats.Tested++

		next, carry := bits.Add64(n, w.stride, 0)
		if carry != 0 {
			return stats, fmt.Errorf("%w: worker %d after candidate %d", ErrArithmeticOverflow, w.id, n)
		}
		w.next = next
	}
}
