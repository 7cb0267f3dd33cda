// ============================================================================
// prime-bench CLI - Command Line Interface
// ============================================================================
//
// Package: internal/cli
// File: cli.go
// Purpose: Provides the command line interface based on Cobra framework
//
// Command Structure:
//   primes                              # Root command
//   ├── test <number> [algorithms]      # Test one number
//   ├── benchmark <duration> [algs]     # Time-bounded parallel prime search
//   │   ├── --save                      # Export records to Parquet
//   │   ├── --output, -o                # Export directory
//   │   ├── --compression               # none / snappy / gzip / zstd / lz4
//   │   ├── --workers, -w               # Worker count (0 = all CPUs)
//   │   ├── --start                     # First candidate
//   │   └── --each                      # One run per algorithm
//   ├── sieve <limit> [algorithm]       # Count primes in [0, limit]
//   │   └── --list                      # Also print the primes
//   ├── algorithms                      # List registered algorithms
//   ├── --config, -c                    # Config file path
//   └── --version
//
// Algorithm lists:
//   Comma-separated and/or space-separated canonical names, e.g.
//     ./primes test 97 miller-rabin,aks
//     ./primes benchmark 30sec trial-division miller-rabin
//   With no list, every algorithm of the kind runs, one after another.
//
// benchmark Command:
//   1. Load config file (a missing default config means built-in defaults)
//   2. Start Metrics HTTP server (if enabled)
//   3. Run the engine for the given duration; SIGINT / SIGTERM abort it
//   4. Print summary and per-worker stats, export if --save
//
//   Examples:
//     ./primes benchmark 10s miller-rabin --save -o ./out
//     ./primes benchmark "1h 30min" --each --workers 8
//
// Error Handling:
//   Every command returns its error from RunE; main prints it and exits 1.
//
// ============================================================================

package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/ChuLiYu/prime-bench/internal/algorithm"
	"github.com/ChuLiYu/prime-bench/internal/engine"
	"github.com/ChuLiYu/prime-bench/internal/export"
	"github.com/ChuLiYu/prime-bench/internal/metrics"
	"github.com/ChuLiYu/prime-bench/internal/report"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// app is the state shared by every command of one CLI instance.
type app struct {
	configFile string
	registry   *algorithm.Registry
	promReg    *prometheus.Registry
	metrics    *metrics.Collector
	serving    bool
}

func BuildCLI() *cobra.Command {
	promReg := prometheus.NewRegistry()
	a := &app{
		registry: algorithm.NewRegistry(),
		promReg:  promReg,
		metrics:  metrics.NewCollector(promReg),
	}

	rootCmd := &cobra.Command{
		Use:   "primes",
		Short: "primes: primality tests, sieves and time-bounded benchmarks",
		Long: `primes compares prime-number algorithms:
- five primality tests (trial division variants, Miller-Rabin, AKS)
- the sieve of Eratosthenes
- a parallel, time-bounded prime search with Parquet export`,
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&a.configFile, "config", "c", DefaultConfigPath, "config file path")

	rootCmd.AddCommand(a.buildTestCommand())
	rootCmd.AddCommand(a.buildBenchmarkCommand())
	rootCmd.AddCommand(a.buildSieveCommand())
	rootCmd.AddCommand(a.buildAlgorithmsCommand())

	return rootCmd
}

// config loads the config file named by --config.
func (a *app) config(cmd *cobra.Command) (*Config, error) {
	explicit := cmd.Flags().Changed("config")
	cfg, err := resolveConfig(a.configFile, explicit)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	a.startMetrics(cfg)
	return cfg, nil
}

func (a *app) startMetrics(cfg *Config) {
	if !cfg.Metrics.Enabled || a.serving {
		return
	}
	a.serving = true
	go func() {
		log.Printf("Starting metrics server on :%d\n", cfg.Metrics.Port)
		if err := metrics.StartServer(cfg.Metrics.Port, a.promReg); err != nil {
			log.Printf("Metrics server error: %v\n", err)
		}
	}()
}

// ============================================================================
// test
// ============================================================================

func (a *app) buildTestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "test <number> [algorithms]",
		Short: "Test whether a number is prime",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.config(cmd); err != nil {
				return err
			}
			return a.runTest(report.NewPrinter(cmd.OutOrStdout()), args[0], args[1:])
		},
	}
}

func (a *app) runTest(p *report.Printer, arg string, names []string) error {
	number, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q: %w", arg, err)
	}

	ids, err := a.registry.Resolve(algorithm.KindPrimality, names)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		p.Notice("No algorithm specified. Running all algorithms.")
	}

	for _, id := range ids {
		fn, err := a.registry.Primality(id)
		if err != nil {
			return err
		}
		begin := time.Now()
		prime := fn(number)
		took := time.Since(begin)

		a.metrics.RecordTest(id.String(), took.Seconds())
		p.TestResult(number, id.String(), prime, took)
	}
	return nil
}

// ============================================================================
// benchmark
// ============================================================================

type benchmarkOptions struct {
	save        bool
	output      string
	compression string
	workers     int
	start       uint64
	each        bool
}

func (a *app) buildBenchmarkCommand() *cobra.Command {
	var opts benchmarkOptions

	cmd := &cobra.Command{
		Use:   "benchmark <duration> [algorithms]",
		Short: "Search for primes in parallel for a fixed duration",
		Long: `Search for primes in parallel for a fixed duration.

Duration accepts Go syntax (5s, 10m, 1h30m, 500ms) and spelled-out units
(30sec, 2min, "1h 30min", 2days). Several algorithms in one run are
combined: a candidate counts as prime only if every one accepts it.
Use --each to benchmark them one by one instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config(cmd)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if !flags.Changed("save") {
				opts.save = cfg.Benchmark.Save
			}
			if !flags.Changed("output") {
				opts.output = cfg.Benchmark.OutputDir
			}
			if !flags.Changed("compression") {
				opts.compression = cfg.Benchmark.Compression
			}
			if !flags.Changed("workers") {
				opts.workers = cfg.Benchmark.Workers
			}
			if !flags.Changed("start") {
				opts.start = cfg.Benchmark.Start
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.runBenchmark(ctx, report.NewPrinter(cmd.OutOrStdout()), args[0], args[1:], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.save, "save", false, "Export records to a Parquet file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "./out", "Export directory")
	cmd.Flags().StringVar(&opts.compression, "compression", export.DefaultCompression, "Parquet compression: none, snappy, gzip, zstd, lz4")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "Worker count (0 = number of CPUs)")
	cmd.Flags().Uint64Var(&opts.start, "start", engine.DefaultStart, "First candidate")
	cmd.Flags().BoolVar(&opts.each, "each", false, "Run one benchmark per algorithm instead of their conjunction")

	return cmd
}

func (a *app) runBenchmark(ctx context.Context, p *report.Printer, durationArg string, names []string, opts benchmarkOptions) error {
	d, err := parseDuration(durationArg)
	if err != nil {
		return fmt.Errorf("%w (valid formats: 5s, 10m, 1h, 30sec, 2min)", err)
	}

	ids, err := a.registry.Resolve(algorithm.KindPrimality, names)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		p.Notice("No algorithm specified. Running all algorithms.")
		opts.each = true
	}

	exporter := export.NewManager(opts.output)
	if opts.save {
		if err := exporter.SetCompression(opts.compression); err != nil {
			return err
		}
	}

	eng := engine.New(a.registry, engine.Config{Workers: opts.workers, Start: opts.start}, a.metrics)

	runs := [][]algorithm.ID{ids}
	if opts.each {
		runs = runs[:0]
		for _, id := range ids {
			runs = append(runs, []algorithm.ID{id})
		}
	}

	for _, set := range runs {
		algNames := make([]string, len(set))
		for i, id := range set {
			algNames[i] = id.String()
		}

		p.BenchmarkStart(algNames, d, eng.Workers())
		res, err := eng.Run(ctx, set, d)
		if err != nil {
			return err
		}
		p.BenchmarkResult(res)

		if !opts.save {
			continue
		}
		path, err := exporter.Write(export.FileName(algNames, d, res.RunID), res.Records)
		if err != nil {
			return fmt.Errorf("failed to save results: %w", err)
		}
		p.Saved(path)
	}
	return nil
}

// ============================================================================
// sieve
// ============================================================================

func (a *app) buildSieveCommand() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "sieve <limit> [algorithm]",
		Short: "Count the primes in [0, limit] with a sieve",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config(cmd)
			if err != nil {
				return err
			}
			return a.runSieve(report.NewPrinter(cmd.OutOrStdout()), args[0], args[1:], cfg.Sieve.MaxLimit, list)
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "Print every prime found")

	return cmd
}

func (a *app) runSieve(p *report.Printer, arg string, names []string, maxLimit uint64, list bool) error {
	limit, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid limit %q: %w", arg, err)
	}
	if maxLimit > 0 && limit > maxLimit {
		return fmt.Errorf("%w: limit %d exceeds configured sieve.max_limit %d", algorithm.ErrNumericDomain, limit, maxLimit)
	}

	ids, err := a.registry.Resolve(algorithm.KindSieve, names)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		p.Notice("No algorithm specified. Running all algorithms.")
	}

	for _, id := range ids {
		fn, err := a.registry.Sieve(id)
		if err != nil {
			return err
		}
		begin := time.Now()
		res, err := fn(limit)
		if err != nil {
			return err
		}
		took := time.Since(begin)
		a.metrics.RecordSieve(took.Seconds())

		var primes []uint64
		if list {
			primes = res.Primes()
		}
		p.SieveResult(limit, id.String(), res.Count(), took, primes)
	}
	return nil
}

// ============================================================================
// algorithms
// ============================================================================

func (a *app) buildAlgorithmsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List registered algorithms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := report.NewPrinter(cmd.OutOrStdout())
			for _, kind := range []algorithm.Kind{algorithm.KindPrimality, algorithm.KindSieve} {
				p.Algorithms(kind.String(), a.registry.Names(kind))
			}
			return nil
		},
	}
}
