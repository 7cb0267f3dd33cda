// ============================================================================
// prime-bench Metrics - Prometheus 監控指標
// ============================================================================
//
// Package: internal/metrics
// 文件: metrics.go
// 功能: 收集和暴露 benchmark / test / sieve 的運行指標
//
// 指標分類:
//
//   1. 計數器 (Counter):
//      - primes_benchmark_runs_total{result}: benchmark 執行次數（ok / failed）
//      - primes_candidates_tested_total: 已測試的候選數總數
//      - primes_found_total: 找到的質數總數
//
//   2. 性能指標 (Histogram):
//      - primes_benchmark_duration_seconds: 單次 benchmark 實際耗時
//      - primes_test_duration_seconds{algorithm}: 單次質數測試耗時
//      - primes_sieve_duration_seconds: 單次篩法耗時
//
//   3. 狀態指標 (Gauge):
//      - primes_largest_found: 最近一次 benchmark 找到的最大質數
//
// Prometheus 查詢示例:
//
//   # 每秒測試的候選數
//   rate(primes_candidates_tested_total[1m])
//
//   # 每個演算法的 95 分位測試延遲
//   histogram_quantile(0.95, sum by (algorithm, le) (rate(primes_test_duration_seconds_bucket[5m])))
//
// HTTP 端點:
//   通過 /metrics 端點暴露，默認端口 9090
//
// 使用方式:
//   所有方法對 nil *Collector 安全（不做任何事），
//   因此 Engine 與 CLI 在未啟用 metrics 時可直接傳入 nil。
//
// ============================================================================

package metrics

import (
	"fmt"
	"net/http"

	"github.com/ChuLiYu/prime-bench/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector Prometheus 指標收集器
type Collector struct {
	// 計數器
	runs             *prometheus.CounterVec
	candidatesTested prometheus.Counter
	primesFound      prometheus.Counter

	// 效能指標
	benchmarkDuration prometheus.Histogram
	testDuration      *prometheus.HistogramVec
	sieveDuration     prometheus.Histogram

	// 狀態指標
	largestFound prometheus.Gauge
}

// NewCollector 創建新的指標收集器並註冊到 reg
// reg 為 nil 時使用 prometheus.DefaultRegisterer
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "primes_benchmark_runs_total",
			Help: "Total number of benchmark runs by result",
		}, []string{"result"}),
		candidatesTested: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "primes_candidates_tested_total",
			Help: "Total number of candidates evaluated by benchmark workers",
		}),
		primesFound: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "primes_found_total",
			Help: "Total number of primes discovered by benchmark workers",
		}),
		benchmarkDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "primes_benchmark_duration_seconds",
			Help:    "Wall-clock duration of benchmark runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300, 900, 3600},
		}),
		testDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "primes_test_duration_seconds",
			Help:    "Duration of a single primality test in seconds",
			Buckets: prometheus.ExponentialBuckets(1e-7, 10, 10),
		}, []string{"algorithm"}),
		sieveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "primes_sieve_duration_seconds",
			Help:    "Duration of a sieve computation in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		largestFound: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "primes_largest_found",
			Help: "Largest prime found by the most recent benchmark run",
		}),
	}

	// 註冊所有指標
	reg.MustRegister(
		c.runs,
		c.candidatesTested,
		c.primesFound,
		c.benchmarkDuration,
		c.testDuration,
		c.sieveDuration,
		c.largestFound,
	)

	return c
}

// RecordRun 記錄一次成功的 benchmark
func (c *Collector) RecordRun(summary types.Summary, workers []types.WorkerStats, seconds float64) {
	if c == nil {
		return
	}
	c.runs.WithLabelValues("ok").Inc()
	c.benchmarkDuration.Observe(seconds)
	c.primesFound.Add(float64(summary.PrimesFound))
	c.largestFound.Set(float64(summary.LargestFound))
	for _, w := range workers {
		c.candidatesTested.Add(float64(w.Tested))
	}
}

// RecordFailedRun 記錄一次失敗的 benchmark
func (c *Collector) RecordFailedRun() {
	if c == nil {
		return
	}
	c.runs.WithLabelValues("failed").Inc()
}

// RecordTest 記錄一次質數測試
func (c *Collector) RecordTest(algorithm string, seconds float64) {
	if c == nil {
		return
	}
	c.testDuration.WithLabelValues(algorithm).Observe(seconds)
}

// RecordSieve 記錄一次篩法
func (c *Collector) RecordSieve(seconds float64) {
	if c == nil {
		return
	}
	c.sieveDuration.Observe(seconds)
}

// StartServer 啟動 Prometheus metrics HTTP 伺服器
//
// 參數：
//   - port: HTTP 伺服器端口
//   - gatherer: 指標來源；nil 時使用 prometheus.DefaultGatherer
//
// 返回值：
//   - error: 啟動失敗的錯誤
func StartServer(port int, gatherer prometheus.Gatherer) error {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	addr := fmt.Sprintf(":%d", port)
	return http.ListenAndServe(addr, mux)
}
