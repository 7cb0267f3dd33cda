package export

// ============================================================================
// 職責說明：
// 1. 將 benchmark 紀錄寫成 Parquet 欄式檔案（elapsed / thread / number）
// 2. 使用原子性寫入（temp file + rename）防止半寫入檔案
// 3. 提供 Load 讀回檔案（測試與離線分析使用）
// ============================================================================

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ChuLiYu/prime-bench/pkg/types"
	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress"
)

// ============================================================================
// 錯誤定義
// ============================================================================

var (
	ErrEmptyName          = errors.New("export file name is empty")
	ErrExportNotFound     = errors.New("export file not found")
	ErrUnknownCompression = errors.New("unknown compression codec")
)

// Extension is appended to every exported file name.
const Extension = ".parquet"

// ============================================================================
// 資料結構定義
// ============================================================================

// row 一筆紀錄在 Parquet 中的欄位佈局；三個欄位皆為 required uint64
type row struct {
	Elapsed uint64 `parquet:"elapsed"` // 自 run 開始的微秒數
	Thread  uint64 `parquet:"thread"`
	Number  uint64 `parquet:"number"`
}

// Manager 匯出管理器
type Manager struct {
	dir   string         // 輸出目錄
	codec compress.Codec // 欄位壓縮
	mu    sync.Mutex     // 保護檔案操作
}

// codecs 支援的壓縮方式；zstd 走 klauspost/compress，lz4 走 pierrec/lz4
var codecs = map[string]compress.Codec{
	"none":   &parquet.Uncompressed,
	"snappy": &parquet.Snappy,
	"gzip":   &parquet.Gzip,
	"zstd":   &parquet.Zstd,
	"lz4":    &parquet.Lz4Raw,
}

// DefaultCompression is the codec used unless SetCompression says otherwise.
const DefaultCompression = "snappy"

// ============================================================================
// 核心方法實作
// ============================================================================

// NewManager 建立匯出管理器；dir 不存在時於第一次 Write 建立
func NewManager(dir string) *Manager {
	return &Manager{
		dir:   dir,
		codec: codecs[DefaultCompression],
	}
}

// SetCompression 選擇壓縮方式（none / snappy / gzip / zstd / lz4）
func (m *Manager) SetCompression(name string) error {
	codec, ok := codecs[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCompression, name)
	}
	m.mu.Lock()
	m.codec = codec
	m.mu.Unlock()
	return nil
}

// GetDir 取得輸出目錄
func (m *Manager) GetDir() string {
	return m.dir
}

// Write 原子性寫入一個 Parquet 檔案
//
// 使用原子性寫入流程：
// 1. 寫入臨時檔案（.tmp）
// 2. 使用 os.Rename 原子性替換目標檔案
//
// 參數：
//   - name: 檔名（不含目錄，通常由 FileName 產生）
//   - records: 依 drain 順序排列的紀錄
//
// 返回值：
//   - string: 最終檔案路徑
//   - error: 寫入失敗時的錯誤
func (m *Manager) Write(name string, records []types.Record) (string, error) {
	if name == "" {
		return "", ErrEmptyName
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	path := filepath.Join(m.dir, name)
	tmpPath := path + ".tmp"

	// 1. 寫入臨時檔案
	if err := writeRows(tmpPath, records, m.codec); err != nil {
		os.Remove(tmpPath)
		return "", err
	}

	// 2. 原子性重新命名
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to rename export: %w", err)
	}

	return path, nil
}

func writeRows(path string, records []types.Record, codec compress.Codec) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create temp export: %w", err)
	}
	defer f.Close()

	rows := make([]row, len(records))
	for i, r := range records {
		rows[i] = row{
			Elapsed: uint64(r.Elapsed / time.Microsecond),
			Thread:  r.Thread,
			Number:  r.Number,
		}
	}

	w := parquet.NewGenericWriter[row](f, parquet.Compression(codec))
	if _, err := w.Write(rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to sync export: %w", err)
	}
	return nil
}

// Load 讀回一個匯出檔案，紀錄順序與寫入時相同
// Elapsed 的精度為微秒
func Load(path string) ([]types.Record, error) {
	rows, err := parquet.ReadFile[row](path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrExportNotFound, path)
		}
		return nil, fmt.Errorf("failed to read export: %w", err)
	}

	records := make([]types.Record, len(rows))
	for i, r := range rows {
		records[i] = types.Record{
			Elapsed: time.Duration(r.Elapsed) * time.Microsecond,
			Thread:  r.Thread,
			Number:  r.Number,
		}
	}
	return records, nil
}

// FileName 產生 "<algorithms>-<duration>-<runid8>.parquet"
// 例如 miller-rabin+aks-1m0s-3f2a9c01.parquet
func FileName(algorithms []string, d time.Duration, runID string) string {
	id := strings.ReplaceAll(runID, "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s-%s-%s%s", strings.Join(algorithms, "+"), d, id, Extension)
}
