package main

// ============================================================================
// 職責說明：
// 1. CLI 應用程式入口點
// 2. 初始化並執行 CLI 命令
// 3. 處理頂層錯誤（印到 stderr，exit 1）
// ============================================================================

import (
	"fmt"
	"os"

	"github.com/ChuLiYu/prime-bench/internal/cli"
)

func main() {
	rootCmd := cli.BuildCLI()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "⚠️ Error: %v\n", err)
		os.Exit(1)
	}
}
