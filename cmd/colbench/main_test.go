package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/colq"
	"github.com/hupe1980/colq/query"
)

func TestParseModes(t *testing.T) {
	modes, err := parseModes("all")
	require.NoError(t, err)
	assert.Equal(t, query.Modes(), modes)

	modes, err = parseModes("view, compressed")
	require.NoError(t, err)
	assert.Equal(t, []query.Mode{query.ModeView, query.ModeCompressedBlocks}, modes)

	_, err = parseModes("bogus")
	assert.ErrorIs(t, err, query.ErrUnknownMode)
}

func TestRunBench(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "table")

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--dir", dir, "--rows", "20000", "--codec", "zstd", "--log-level", "error"})
	require.NoError(t, cmd.ExecuteContext(t.Context()))

	var results []string
	for _, line := range strings.Split(out.String(), "\n") {
		if strings.HasPrefix(line, "Result: ") {
			results = append(results, line)
		}
	}
	require.Len(t, results, 6)
	for i := 1; i < 3; i++ {
		assert.Equal(t, results[0], results[i], "count non-null agrees across modes")
		assert.Equal(t, results[3], results[3+i], "predicate count agrees across modes")
	}
	assert.Contains(t, out.String(), "Elapsed: ")
	assert.Contains(t, out.String(), "(written)")

	// A second run reuses the raw files.
	out.Reset()
	cmd = newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--dir", dir, "--rows", "20000", "--codec", "zstd", "--mode", "view"})
	require.NoError(t, cmd.ExecuteContext(t.Context()))
	assert.Contains(t, out.String(), "(reused)")
}

func TestRunBench_InvalidFlags(t *testing.T) {
	for _, args := range [][]string{
		{"--codec", "gzip"},
		{"--log-level", "loud"},
		{"--log-format", "xml"},
		{"--mode", "mmap"},
	} {
		cmd := newRootCommand()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(append([]string{"--dir", t.TempDir(), "--rows", "10"}, args...))
		assert.Error(t, cmd.ExecuteContext(t.Context()), args)
	}
}

func TestTableOptions_LogFormat(t *testing.T) {
	for _, format := range []string{"text", "json", "JSON"} {
		cfg := &config{codec: "lz4", logLevel: "info", logFormat: format}
		opts, err := tableOptions(cfg, colq.NoopMetricsCollector{})
		require.NoError(t, err, format)
		assert.Len(t, opts, 5)
	}
}

func TestPrometheusCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewPrometheusCollector(reg)

	c.RecordOpen(0, nil)
	c.RecordQuery("count_non_null", query.ModeView, 100, 0, nil)
	c.RecordQuery("count_non_null", query.ModeView, 50, 0, nil)
	c.RecordGenerate(1000, 0, nil)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	counters := map[string]float64{}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			if m.GetCounter() != nil {
				counters[mf.GetName()] += m.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, 150.0, counters["colq_rows_scanned_total"])
	assert.Equal(t, 1000.0, counters["colq_rows_generated_total"])
}
