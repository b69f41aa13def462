package colq

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/colq/query"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordOpen is called after each OpenTable.
	RecordOpen(duration time.Duration, err error)

	// RecordQuery is called after each query. rows is the number of zipped
	// rows scanned, err is nil if successful.
	RecordQuery(name string, mode query.Mode, rows int, duration time.Duration, err error)

	// RecordGenerate is called after each table generation.
	RecordGenerate(rows int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordOpen(time.Duration, error)                           {}
func (NoopMetricsCollector) RecordQuery(string, query.Mode, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordGenerate(int, time.Duration, error)                  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	OpenCount          atomic.Int64
	OpenErrors         atomic.Int64
	QueryCount         atomic.Int64
	QueryErrors        atomic.Int64
	QueryRows          atomic.Int64
	QueryTotalNanos    atomic.Int64
	GenerateCount      atomic.Int64
	GenerateErrors     atomic.Int64
	GenerateRows       atomic.Int64
	GenerateTotalNanos atomic.Int64
}

// RecordOpen implements MetricsCollector.
func (b *BasicMetricsCollector) RecordOpen(_ time.Duration, err error) {
	b.OpenCount.Add(1)
	if err != nil {
		b.OpenErrors.Add(1)
	}
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(_ string, _ query.Mode, rows int, duration time.Duration, err error) {
	b.QueryCount.Add(1)
	b.QueryTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.QueryErrors.Add(1)
		return
	}
	b.QueryRows.Add(int64(rows))
}

// RecordGenerate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGenerate(rows int, duration time.Duration, err error) {
	b.GenerateCount.Add(1)
	b.GenerateTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.GenerateErrors.Add(1)
		return
	}
	b.GenerateRows.Add(int64(rows))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		OpenCount:      b.OpenCount.Load(),
		OpenErrors:     b.OpenErrors.Load(),
		QueryCount:     b.QueryCount.Load(),
		QueryErrors:    b.QueryErrors.Load(),
		QueryRows:      b.QueryRows.Load(),
		QueryAvgNanos:  avg(b.QueryTotalNanos.Load(), b.QueryCount.Load()),
		GenerateCount:  b.GenerateCount.Load(),
		GenerateErrors: b.GenerateErrors.Load(),
		GenerateRows:   b.GenerateRows.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	OpenCount      int64
	OpenErrors     int64
	QueryCount     int64
	QueryErrors    int64
	QueryRows      int64
	QueryAvgNanos  int64
	GenerateCount  int64
	GenerateErrors int64
	GenerateRows   int64
}
