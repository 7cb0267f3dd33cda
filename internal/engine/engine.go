// ============================================================================
// prime-bench Engine - 時間限制的並行質數搜尋
// ============================================================================
//
// Package: internal/engine
// 文件: engine.go
// 功能: 協調 Registry、Worker Pool、Result Collector 與 Metrics，
//       執行一次有截止時間的 benchmark
//
// 執行流程:
//   1. 驗證輸入：演算法集合非空、duration > 0（在啟動任何 Worker 之前）
//   2. Registry.Predicate(ids) 建立合取判定函數（所有演算法都接受才算命中）
//   3. 建立 Collector 與共享停止訊號，啟動 W 個 stride Worker
//   4. 截止監視器：context.WithTimeout 到期後觸發停止訊號
//   5. Pool.Wait() 等待所有 Worker 結束
//   6. Collector.Close() → Drain() → types.Summarize()
//
// 失敗語義:
//   - Worker 溢位 / panic：整個 run 失敗，部分結果丟棄
//   - 父 context 被取消：run 中止並回傳 context 錯誤（不是正常結束）
//   - 不自動重試
//
// 並發安全:
//   - 停止訊號：atomic.Bool，只會從 false 變為 true
//   - Collector：mutex 串行化 append
//   - 其餘狀態皆為 Worker 本地
//
// ============================================================================

package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/ChuLiYu/prime-bench/internal/algorithm"
	"github.com/ChuLiYu/prime-bench/internal/metrics"
	"github.com/ChuLiYu/prime-bench/internal/results"
	"github.com/ChuLiYu/prime-bench/internal/worker"
	"github.com/ChuLiYu/prime-bench/pkg/types"
	"github.com/google/uuid"
)

var log = slog.Default()

// DefaultStart is the first candidate of a run unless configured otherwise.
const DefaultStart = 2

var (
	// ErrNoAlgorithmSelected 表示演算法集合為空
	ErrNoAlgorithmSelected = errors.New("engine: no algorithm selected")
	// ErrInvalidDuration 表示 benchmark 時長不為正
	ErrInvalidDuration = errors.New("engine: duration must be positive")
)

// ============================================================================
// 資料結構定義
// ============================================================================

// Config Engine 配置
type Config struct {
	Workers int    // Worker 數量；0 表示 runtime.NumCPU()
	Start   uint64 // 第一個候選數；0 表示 DefaultStart
}

// Result is everything a finished run hands to its caller.
type Result struct {
	RunID       string              // unique per run
	Algorithms  []algorithm.ID      // the conjunction that was applied
	Workers     int                 // stride / worker count
	Duration    time.Duration       // requested duration
	Elapsed     time.Duration       // start to last worker joined
	Summary     types.Summary       // aggregate over Records
	Records     []types.Record      // arrival order
	WorkerStats []types.WorkerStats // indexed by worker id
}

// Engine runs time-bounded benchmarks
type Engine struct {
	registry *algorithm.Registry
	metrics  *metrics.Collector // may be nil
	config   Config
}

// ============================================================================
// 核心方法實作
// ============================================================================

// New 建立 Engine；m 可為 nil
func New(registry *algorithm.Registry, config Config, m *metrics.Collector) *Engine {
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.Start == 0 {
		config.Start = DefaultStart
	}
	return &Engine{
		registry: registry,
		metrics:  m,
		config:   config,
	}
}

// Workers returns the worker count runs will use.
func (e *Engine) Workers() int {
	return e.config.Workers
}

// Run searches for primes accepted by every algorithm in ids until d has
// elapsed, then returns the full record set and its summary.
func (e *Engine) Run(ctx context.Context, ids []algorithm.ID, d time.Duration) (*Result, error) {
	if len(ids) == 0 {
		return nil, ErrNoAlgorithmSelected
	}
	if d <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDuration, d)
	}
	predicate, err := e.registry.Predicate(ids)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	collector := results.NewCollector()
	stop := worker.NewAtomicCanceler()

	pool, err := worker.NewPool(worker.Config{
		Workers:   e.config.Workers,
		Start:     e.config.Start,
		Predicate: worker.Predicate(predicate),
		Sink:      collector,
		Stop:      stop,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	log.Info("Benchmark starting",
		"run_id", runID,
		"algorithms", idNames(ids),
		"workers", e.config.Workers,
		"duration", d)

	// 截止監視器：到期或父 context 取消時觸發停止訊號
	runCtx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	go func() {
		<-runCtx.Done()
		stop.Cancel()
	}()

	origin := time.Now()
	if err := pool.Start(origin); err != nil {
		return nil, fmt.Errorf("failed to start worker pool: %w", err)
	}

	stats, err := pool.Wait()
	elapsed := time.Since(origin)
	collector.Close()

	if err != nil {
		e.metrics.RecordFailedRun()
		log.Error("Benchmark failed", "run_id", runID, "error", err)
		return nil, fmt.Errorf("benchmark %s failed: %w", runID, err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		e.metrics.RecordFailedRun()
		return nil, fmt.Errorf("benchmark %s aborted: %w", runID, ctxErr)
	}

	records, err := collector.Drain()
	if err != nil {
		return nil, err
	}
	summary := types.Summarize(records)
	e.metrics.RecordRun(summary, stats, elapsed.Seconds())

	log.Info("Benchmark completed",
		"run_id", runID,
		"elapsed", elapsed,
		"primes_found", summary.PrimesFound,
		"largest_found", summary.LargestFound)

	return &Result{
		RunID:       runID,
		Algorithms:  append([]algorithm.ID(nil), ids...),
		Workers:     e.config.Workers,
		Duration:    d,
		Elapsed:     elapsed,
		Summary:     summary,
		Records:     records,
		WorkerStats: stats,
	}, nil
}

func idNames(ids []algorithm.ID) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.String()
	}
	return names
}
