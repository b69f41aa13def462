package colq

import (
	"log/slog"

	"github.com/hupe1980/colq/codec"
	"github.com/hupe1980/colq/store"
)

type options struct {
	codec            codec.Codec
	blockSize        int
	readBufferSize   int
	verify           store.VerifyMode
	seed             int64
	ioLimit          int64
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures OpenTable and Generate.
type Option func(*options)

// WithCodec configures the codec of the compressed column files.
//
// If unset, OpenTable detects the codec from the files present in the table
// directory and Generate uses codec.Default.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

// WithBlockSize sets the block size in bytes of raw block iteration.
func WithBlockSize(n int) Option {
	return func(o *options) {
		o.blockSize = n
	}
}

// WithReadBufferSize sets the buffer size of the decompression reader, which
// bounds the size of decompressed blocks.
func WithReadBufferSize(n int) Option {
	return func(o *options) {
		o.readBufferSize = n
	}
}

// WithVerify sets how OpenTable checks each compressed file against its raw
// file. The default is store.VerifyLength.
func WithVerify(mode store.VerifyMode) Option {
	return func(o *options) {
		o.verify = mode
	}
}

// WithSeed sets the random seed used by Generate.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithIOLimit caps the write throughput of Generate in bytes per second.
// Zero means unlimited.
func WithIOLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.ioLimit = bytesPerSec
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &colq.BasicMetricsCollector{}
//	t, _ := colq.OpenTable(dir, colq.WithMetricsCollector(metrics))
//	// ... run queries ...
//	stats := metrics.GetStats()
//	fmt.Printf("Queries: %d, Avg latency: %dns\n", stats.QueryCount, stats.QueryAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		verify:           store.VerifyLength,
		seed:             1,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}

func (o options) storeOptions() []store.Option {
	opts := []store.Option{
		store.WithBlockSize(o.blockSize),
		store.WithReadBufferSize(o.readBufferSize),
		store.WithVerify(o.verify),
		store.WithLogger(o.logger.Logger),
	}
	if o.codec != nil {
		opts = append(opts, store.WithCodec(o.codec))
	}
	return opts
}
