package worker

import (
	"errors"
	"sync/atomic"

	"github.com/ChuLiYu/prime-bench/pkg/types"
)

var (
	// ErrArithmeticOverflow 表示 stride 推進超出 uint64 範圍，結果集不再完整
	ErrArithmeticOverflow = errors.New("worker: candidate stride overflowed uint64")
	// ErrWorkerPanic 表示 Worker 內部發生 panic（已被 recover 並轉為錯誤）
	ErrWorkerPanic = errors.New("worker: panic during candidate evaluation")
)

// Predicate decides whether a candidate counts as a hit.
type Predicate func(n uint64) bool

// Sink receives records from workers. Implementations must be safe for
// concurrent use.
type Sink interface {
	Append(r types.Record) error
}

// Canceler is the shared stop signal polled by workers in their hot loop.
//
// Implementations must be safe for concurrent use:
//   - Multiple goroutines may call Done() concurrently
//   - Cancel() may be called concurrently with Done()
type Canceler interface {
	// Done returns true once cancellation has been triggered.
	Done() bool

	// Cancel triggers cancellation. Safe to call multiple times.
	Cancel()
}

// AtomicCanceler is a Canceler backed by a single atomic flag. The flag
// only ever goes from false to true.
type AtomicCanceler struct {
	stopped atomic.Bool
}

// NewAtomicCanceler returns an untriggered AtomicCanceler.
func NewAtomicCanceler() *AtomicCanceler {
	return &AtomicCanceler{}
}

func (c *AtomicCanceler) Done() bool {
	return c.stopped.Load()
}

func (c *AtomicCanceler) Cancel() {
	c.stopped.Store(true)
}
