package metrics

import (
	"testing"

	"github.com/ChuLiYu/prime-bench/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := NewCollector(reg)

	assert.NotNil(t, collector, "NewCollector should return a non-nil collector")
	assert.NotNil(t, collector.runs, "runs counter should be initialized")
	assert.NotNil(t, collector.candidatesTested, "candidatesTested counter should be initialized")
	assert.NotNil(t, collector.primesFound, "primesFound counter should be initialized")
	assert.NotNil(t, collector.benchmarkDuration, "benchmarkDuration histogram should be initialized")
	assert.NotNil(t, collector.testDuration, "testDuration histogram should be initialized")
	assert.NotNil(t, collector.sieveDuration, "sieveDuration histogram should be initialized")
	assert.NotNil(t, collector.largestFound, "largestFound gauge should be initialized")
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg)

	assert.Panics(t, func() {
		NewCollector(reg)
	}, "registering the same metrics twice should panic")
}

func TestRecordRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := NewCollector(reg)

	summary := types.Summary{PrimesFound: 25, LargestFound: 97}
	workers := []types.WorkerStats{
		{Worker: 0, Tested: 40, Found: 12},
		{Worker: 1, Tested: 60, Found: 13},
	}
	collector.RecordRun(summary, workers, 1.5)

	assert.Equal(t, 1.0, testutil.ToFloat64(collector.runs.WithLabelValues("ok")))
	assert.Equal(t, 25.0, testutil.ToFloat64(collector.primesFound))
	assert.Equal(t, 100.0, testutil.ToFloat64(collector.candidatesTested))
	assert.Equal(t, 97.0, testutil.ToFloat64(collector.largestFound))
}

func TestRecordFailedRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := NewCollector(reg)

	for i := 0; i < 3; i++ {
		collector.RecordFailedRun()
	}
	assert.Equal(t, 3.0, testutil.ToFloat64(collector.runs.WithLabelValues("failed")))
}

func TestRecordTestAndSieve(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := NewCollector(reg)

	latencies := []float64{0.000001, 0.001, 0.1, 1.0}
	for _, latency := range latencies {
		assert.NotPanics(t, func() {
			collector.RecordTest("miller-rabin", latency)
			collector.RecordSieve(latency)
		}, "recording latency %f should not panic", latency)
	}

	count, err := testutil.GatherAndCount(reg, "primes_test_duration_seconds", "primes_sieve_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one series per histogram")
}

func TestNilCollectorIsNoop(t *testing.T) {
	var collector *Collector

	assert.NotPanics(t, func() {
		collector.RecordRun(types.Summary{}, nil, 0)
		collector.RecordFailedRun()
		collector.RecordTest("aks", 0.1)
		collector.RecordSieve(0.1)
	})
}
