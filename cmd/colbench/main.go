// Command colbench generates a synthetic two-column table and times the
// count queries in every access mode.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/hupe1980/colq"
	"github.com/hupe1980/colq/codec"
	"github.com/hupe1980/colq/query"
)

var version = "0.1.0"

type config struct {
	dir         string
	rows        int
	nullProb    float64
	codec       string
	mode        string
	threshold   int64
	seed        int64
	ioLimit     int64
	logLevel    string
	logFormat   string
	metricsAddr string
	skipGen     bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := &config{}

	root := &cobra.Command{
		Use:   "colbench",
		Short: "colbench - columnar scan benchmark",
		Long: `colbench generates an int32 and an int64 column (if absent), memory-maps
them, and times the count queries over the zero-copy view, the raw block
iterator and the compressed block iterator.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&cfg.dir, "dir", "d", colq.DefaultDir(), "Table directory")
	flags.IntVarP(&cfg.rows, "rows", "n", 10_000_000, "Rows to generate")
	flags.Float64Var(&cfg.nullProb, "null-prob", 0.9, "Probability that a generated value is null")
	flags.StringVar(&cfg.codec, "codec", "lz4", "Compression codec (lz4, zstd, s2)")
	flags.Int64Var(&cfg.seed, "seed", 1, "Random seed")
	flags.Int64Var(&cfg.ioLimit, "io-limit", 0, "Generator write limit in bytes per second (0 = unlimited)")
	flags.StringVar(&cfg.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flags.StringVar(&cfg.logFormat, "log-format", "text", "Log format (text, json)")

	root.Flags().StringVarP(&cfg.mode, "mode", "m", "all", "Access mode (view, raw, compressed, all)")
	root.Flags().Int64Var(&cfg.threshold, "threshold", 100, "Threshold of the int64 predicate")
	root.Flags().StringVar(&cfg.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :2112)")
	root.Flags().BoolVar(&cfg.skipGen, "skip-generate", false, "Do not generate, open the existing table")

	root.AddCommand(&cobra.Command{
		Use:   "generate",
		Short: "Generate the table and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := tableOptions(cfg, colq.NoopMetricsCollector{})
			if err != nil {
				return err
			}
			return generate(cmd.Context(), cmd.OutOrStdout(), cfg, opts)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "colbench v%s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", runtime.Version())
			fmt.Fprintf(cmd.OutOrStdout(), "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	return root
}

func tableOptions(cfg *config, mc colq.MetricsCollector) ([]colq.Option, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.logLevel, err)
	}
	var logOpt colq.Option
	switch strings.ToLower(cfg.logFormat) {
	case "text":
		logOpt = colq.WithLogLevel(level)
	case "json":
		logOpt = colq.WithLogger(colq.NewJSONLogger(level))
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.logFormat)
	}
	c, ok := codec.ByName(cfg.codec)
	if !ok {
		return nil, fmt.Errorf("unknown codec %q", cfg.codec)
	}
	return []colq.Option{
		logOpt,
		colq.WithCodec(c),
		colq.WithSeed(cfg.seed),
		colq.WithIOLimit(cfg.ioLimit),
		colq.WithMetricsCollector(mc),
	}, nil
}

func parseModes(s string) ([]query.Mode, error) {
	if strings.EqualFold(s, "all") {
		return query.Modes(), nil
	}
	var modes []query.Mode
	for _, name := range strings.Split(s, ",") {
		m, err := query.ParseMode(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		modes = append(modes, m)
	}
	return modes, nil
}

func generate(ctx context.Context, out io.Writer, cfg *config, opts []colq.Option) error {
	start := time.Now()
	results, err := colq.Generate(ctx, cfg.dir, cfg.rows, cfg.nullProb, opts...)
	if err != nil {
		return err
	}
	for _, r := range results {
		state := "written"
		if r.RawSkipped {
			state = "reused"
		}
		fmt.Fprintf(out, "%s: %d rows (%s), compressed %d bytes\n", r.RawPath, r.Rows, state, r.CompressedBytes)
	}
	fmt.Fprintf(out, "Generated in %d ms\n", time.Since(start).Milliseconds())
	return nil
}

func runBench(ctx context.Context, out io.Writer, cfg *config) error {
	modes, err := parseModes(cfg.mode)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	opts, err := tableOptions(cfg, NewPrometheusCollector(reg))
	if err != nil {
		return err
	}

	if cfg.metricsAddr != "" {
		srv := &http.Server{
			Addr:              cfg.metricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				fmt.Fprintf(os.Stderr, "metrics server: %v\n", err)
			}
		}()
		defer srv.Close()
	}

	if !cfg.skipGen {
		if err := generate(ctx, out, cfg, opts); err != nil {
			return err
		}
	}

	t, err := colq.OpenTable(cfg.dir, opts...)
	if err != nil {
		return err
	}
	defer t.Close()

	fmt.Fprintln(out, "Warming up...")
	warm, err := t.Warmup(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Non-null int32: %d, non-null int64: %d\n", warm.Int32NonNull, warm.Int64NonNull)

	queries := []struct {
		name string
		run  func(query.Mode) (int64, error)
	}{
		{"count non-null", func(m query.Mode) (int64, error) {
			return t.CountNonNull(ctx, m)
		}},
		{fmt.Sprintf("count int32 non-null and int64 > %d", cfg.threshold), func(m query.Mode) (int64, error) {
			return t.CountWhere(ctx, m, query.NonNullAndGreater[int32](cfg.threshold))
		}},
	}

	for _, q := range queries {
		for _, m := range modes {
			fmt.Fprintf(out, "Query: %s [%s]\n", q.name, m)
			start := time.Now()
			n, err := q.run(m)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Result: %d\n", n)
			fmt.Fprintf(out, "Elapsed: %d ms\n", time.Since(start).Milliseconds())
		}
	}
	return nil
}
