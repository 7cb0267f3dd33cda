package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/ChuLiYu/prime-bench/internal/export"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is used when --config is not given.
const DefaultConfigPath = "configs/default.yaml"

// Config represents the complete tool configuration structure
// Maps config file fields through YAML tags
type Config struct {
	Benchmark struct {
		Workers   int    `yaml:"workers"` // 0 = runtime.NumCPU()
		Start     uint64 `yaml:"start"`
		OutputDir   string `yaml:"output_dir"`
		Save        bool   `yaml:"save"`
		Compression string `yaml:"compression"`
	} `yaml:"benchmark"`

	Sieve struct {
		MaxLimit uint64 `yaml:"max_limit"`
	} `yaml:"sieve"`

	Metrics struct {
		Enabled bool `yaml:"enabled"`
		Port    int  `yaml:"port"`
	} `yaml:"metrics"`
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Benchmark.Start = 2
	cfg.Benchmark.OutputDir = "./out"
	cfg.Benchmark.Compression = export.DefaultCompression
	cfg.Sieve.MaxLimit = 10_000_000_000
	cfg.Metrics.Port = 9090
	return cfg
}

// loadConfig reads path over the defaults; keys absent from the file keep
// their default values.
func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return cfg, nil
}

// resolveConfig is loadConfig, except that a missing file at the default
// path is not an error.
func resolveConfig(path string, explicit bool) (*Config, error) {
	cfg, err := loadConfig(path)
	if err != nil && !explicit && errors.Is(err, os.ErrNotExist) {
		return defaultConfig(), nil
	}
	return cfg, err
}
