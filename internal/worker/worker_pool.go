// ============================================================================
// prime-bench Worker Pool - 並發搜尋執行器
// ============================================================================
//
// Package: internal/worker
// 文件: worker_pool.go
// 功能: 管理多個 stride Worker goroutine 的生命週期
//
// 設計模式:
//   固定數量的 Worker，每個 Worker 擁有互不重疊的候選數序列：
//   1. Worker k 測試 start+k, start+k+W, start+k+2W, ...
//   2. 沒有任務 channel，也沒有共享計數器
//   3. 唯一共享的可變狀態：停止訊號（Canceler）與結果 Sink
//
// 架構組件:
//   ┌─────────────┐
//   │   Engine    │ --Start()--> Pool
//   └─────────────┘
//         ↑
//       Wait()
//         ↑
//   ┌─────────────┐
//   │   Pool      │
//   │  ┌────────┐ │
//   │  │Worker 0│── start+0, +W, +2W ...
//   │  │Worker 1│── start+1, +W, +2W ...  ──→ Sink
//   │  │Worker 2│── start+2, +W, +2W ...
//   │  └────────┘ │
//   └─────────────┘
//
// 生命週期:
//   1. NewPool(cfg) - 驗證配置，建立 Worker
//   2. Start(origin) - 啟動所有 Worker goroutines
//   3. Stop() - 觸發停止訊號（冪等）
//   4. Wait() - 等待所有 Worker 結束，回傳統計與第一個錯誤
//
// 錯誤處理:
//   任一 Worker 失敗（溢位、panic、Sink 拒絕）時，Pool 立即觸發停止訊號，
//   其餘 Worker 在下一個候選數前退出；Wait() 回傳第一個錯誤。
//
// ============================================================================

package worker

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ChuLiYu/prime-bench/pkg/types"
	"golang.org/x/sync/errgroup"
)

// ============================================================================
// 錯誤定義
// ============================================================================

var (
	// ErrPoolAlreadyStarted 表示 Pool 已啟動，不可重複啟動
	ErrPoolAlreadyStarted = errors.New("worker pool already started")
	// ErrPoolNotStarted 表示 Pool 尚未啟動，無法等待
	ErrPoolNotStarted = errors.New("worker pool not started")
	// ErrInvalidWorkerCount 表示 Worker 數量不合法
	ErrInvalidWorkerCount = errors.New("worker count must be positive")
)

// ============================================================================
// 資料結構定義
// ============================================================================

// Config describes one pool.
type Config struct {
	Workers   int       // number of workers, also the stride
	Start     uint64    // first candidate of worker 0
	Predicate Predicate // hit condition
	Sink      Sink      // record destination
	Stop      Canceler  // shared stop signal; a fresh AtomicCanceler if nil
}

// Pool 代表 Worker 池，管理多個並發的 stride Worker
type Pool struct {
	workers []*Worker           // Worker 列表
	stop    Canceler            // 共享停止訊號
	group   errgroup.Group      // 追蹤所有 Worker goroutine 與第一個錯誤
	stats   []types.WorkerStats // 每個 Worker 結束時回報的統計（按 id 索引）
	started bool                // 標誌 Pool 是否已啟動
	mu      sync.Mutex          // 保護 started 狀態
}

// ============================================================================
// 核心方法實作
// ============================================================================

// NewPool 建立新的 Worker Pool
func NewPool(cfg Config) (*Pool, error) {
	if cfg.Workers <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkerCount, cfg.Workers)
	}
	if cfg.Predicate == nil || cfg.Sink == nil {
		return nil, errors.New("worker pool requires a predicate and a sink")
	}
	stop := cfg.Stop
	if stop == nil {
		stop = NewAtomicCanceler()
	}

	p := &Pool{
		workers: make([]*Worker, 0, cfg.Workers),
		stop:    stop,
		stats:   make([]types.WorkerStats, cfg.Workers),
	}
	stride := uint64(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		p.workers = append(p.workers, newWorker(i, cfg.Start, stride, cfg.Predicate, cfg.Sink, stop))
	}
	return p, nil
}

// Start 啟動所有 Worker；origin 是所有 Record.Elapsed 的起點
func (p *Pool) Start(origin time.Time) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return ErrPoolAlreadyStarted // 防止重複啟動
	}

	for i, w := range p.workers {
		p.group.Go(func() error {
			stats, err := w.Run(origin)
			p.stats[i] = stats
			if err != nil {
				p.stop.Cancel() // 一個 Worker 失敗即終止整個 run
			}
			return err
		})
	}

	p.started = true
	return nil
}

// Stop 觸發停止訊號；Worker 在下一個候選數前退出
func (p *Pool) Stop() {
	p.stop.Cancel()
}

// Wait 等待所有 Worker 結束
//
// 返回值：
//   - []types.WorkerStats: 每個 Worker 的統計（即使有錯誤也完整）
//   - error: 第一個失敗 Worker 的錯誤
func (p *Pool) Wait() ([]types.WorkerStats, error) {
	p.mu.Lock()
	started := p.started
	p.mu.Unlock()
	if !started {
		return nil, ErrPoolNotStarted
	}

	err := p.group.Wait()
	return p.stats, err
}

// GetWorkerCount 返回 Worker 數量
func (p *Pool) GetWorkerCount() int {
	return len(p.workers)
}

// IsStarted 檢查 Pool 是否已啟動
func (p *Pool) IsStarted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started
}
