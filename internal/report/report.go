// ============================================================================
// prime-bench Report - 人類可讀的結果輸出
// ============================================================================
//
// Package: internal/report
// 文件: report.go
// 功能: 將 test / sieve / benchmark 的結果格式化輸出到 io.Writer
//
// 輸出模式:
//   - 終端機（go-isatty 偵測）：帶 emoji 前綴
//   - 管線 / 檔案 / 測試 buffer：純文字，方便 grep 與比對
//
// 數字格式:
//   - 計數使用千分位（go-humanize Comma / BigComma）
//   - 吞吐量使用 SI 前綴（例如 1.25M/s）
//
// ============================================================================

package report

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/ChuLiYu/prime-bench/internal/engine"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
)

// Printer writes results in a human-readable form.
type Printer struct {
	w     io.Writer
	fancy bool
}

// NewPrinter 建立 Printer；w 為終端機時啟用 emoji
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, fancy: isTerminal(w)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// SetFancy 強制開關 emoji 輸出
func (p *Printer) SetFancy(fancy bool) {
	p.fancy = fancy
}

func (p *Printer) line(icon, format string, args ...any) {
	if p.fancy && icon != "" {
		fmt.Fprintf(p.w, "%s %s\n", icon, fmt.Sprintf(format, args...))
		return
	}
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Notice prints a one-line informational message.
func (p *Printer) Notice(format string, args ...any) {
	p.line("❗️", format, args...)
}

// ============================================================================
// test / sieve
// ============================================================================

// TestResult 輸出單次質數測試結果
func (p *Printer) TestResult(number uint64, alg string, prime bool, took time.Duration) {
	verdict := "composite"
	if prime {
		verdict = "prime"
	}
	p.line("🔍", "Testing if %d is prime using '%s'...", number, alg)
	p.line("✅", "Result: %d is %s", number, verdict)
	p.line("⏱️ ", "Time taken: %s", took)
}

// SieveResult 輸出篩法結果；primes 非 nil 時一併列出
func (p *Printer) SieveResult(limit uint64, alg string, count uint64, took time.Duration, primes []uint64) {
	p.line("🔍", "Sieving [0, %s] using '%s'...", bigComma(limit), alg)
	p.line("✅", "Result: [0, %s] has %s primes", bigComma(limit), humanize.Comma(int64(count)))
	p.line("⏱️ ", "Time taken: %s", took)
	if primes == nil {
		return
	}
	strs := make([]string, len(primes))
	for i, n := range primes {
		strs[i] = fmt.Sprint(n)
	}
	fmt.Fprintln(p.w, strings.Join(strs, " "))
}

// ============================================================================
// benchmark
// ============================================================================

// BenchmarkStart 輸出 benchmark 開始訊息
func (p *Printer) BenchmarkStart(algs []string, d time.Duration, workers int) {
	p.line("⏱️ ", "Running '%s' benchmark for %s on %d workers...", strings.Join(algs, "+"), d, workers)
}

// BenchmarkResult 輸出 benchmark 摘要與各 Worker 統計
func (p *Printer) BenchmarkResult(res *engine.Result) {
	var tested uint64
	for _, s := range res.WorkerStats {
		tested += s.Tested
	}

	p.line("📊", "Final Results (run %s):", res.RunID)
	fmt.Fprintf(p.w, "   Primes found:     %s\n", humanize.Comma(int64(res.Summary.PrimesFound)))
	fmt.Fprintf(p.w, "   Largest found:    %s\n", bigComma(res.Summary.LargestFound))
	fmt.Fprintf(p.w, "   Candidates:       %s\n", humanize.Comma(int64(tested)))
	fmt.Fprintf(p.w, "   Elapsed:          %s\n", res.Elapsed.Round(time.Millisecond))
	if secs := res.Elapsed.Seconds(); secs > 0 {
		fmt.Fprintf(p.w, "   Throughput:       %s\n", humanize.SIWithDigits(float64(tested)/secs, 2, "/s"))
	}

	for _, s := range res.WorkerStats {
		fmt.Fprintf(p.w, "   worker %-3d tested %s, found %s\n",
			s.Worker, humanize.Comma(int64(s.Tested)), humanize.Comma(int64(s.Found)))
	}
}

// Saved 輸出匯出檔案位置
func (p *Printer) Saved(path string) {
	p.line("💾", "Results written to: %s", path)
}

// Algorithms 列出某一類別的演算法
func (p *Printer) Algorithms(kind string, names []string) {
	fmt.Fprintf(p.w, "%s:\n", kind)
	for _, n := range names {
		fmt.Fprintf(p.w, "  %s\n", n)
	}
}

func bigComma(n uint64) string {
	return humanize.BigComma(new(big.Int).SetUint64(n))
}
