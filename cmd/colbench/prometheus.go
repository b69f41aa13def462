package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/colq"
	"github.com/hupe1980/colq/query"
)

// PrometheusCollector implements colq.MetricsCollector on top of Prometheus
// metrics: an operation latency histogram labelled by operation, access mode
// and status, plus counters for rows scanned and rows generated.
type PrometheusCollector struct {
	opLatency   *prometheus.HistogramVec
	rowsScanned *prometheus.CounterVec
	generated   prometheus.Counter
}

var _ colq.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheusCollector creates the collector's metrics and registers them
// with reg. It panics if a metric of the same name is already registered.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	c := &PrometheusCollector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "colq_operation_latency_seconds",
			Help:    "Latency of table operations",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 16),
		}, []string{"op", "mode", "status"}),
		rowsScanned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "colq_rows_scanned_total",
			Help: "Total rows scanned by queries",
		}, []string{"mode"}),
		generated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "colq_rows_generated_total",
			Help: "Total rows requested from the generator",
		}),
	}

	reg.MustRegister(c.opLatency, c.rowsScanned, c.generated)
	return c
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordOpen observes the latency of opening a table.
func (c *PrometheusCollector) RecordOpen(d time.Duration, err error) {
	c.opLatency.WithLabelValues("open", "", status(err)).Observe(d.Seconds())
}

// RecordQuery observes a query's latency and, on success, adds the scanned
// rows to the per-mode counter.
func (c *PrometheusCollector) RecordQuery(name string, mode query.Mode, rows int, d time.Duration, err error) {
	c.opLatency.WithLabelValues(name, mode.String(), status(err)).Observe(d.Seconds())
	if err == nil {
		c.rowsScanned.WithLabelValues(mode.String()).Add(float64(rows))
	}
}

// RecordGenerate observes a generation run and counts the rows written.
func (c *PrometheusCollector) RecordGenerate(rows int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("generate", "", status(err)).Observe(d.Seconds())
	if err == nil {
		c.generated.Add(float64(rows))
	}
}
