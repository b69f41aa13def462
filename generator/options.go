package generator

import (
	"log/slog"

	"github.com/hupe1980/colq/codec"
	"github.com/hupe1980/colq/internal/fs"
	"github.com/hupe1980/colq/internal/resource"
)

// DefaultChunkRows is the number of values generated per write.
const DefaultChunkRows = 64 * 1024

type options struct {
	codec      codec.Codec
	chunkRows  int
	controller *resource.Controller
	seed       int64
	fs         fs.FileSystem
	logger     *slog.Logger
}

func defaultOptions() options {
	return options{
		codec:     codec.Default,
		chunkRows: DefaultChunkRows,
		seed:      1,
		fs:        fs.Default,
		logger:    slog.New(slog.DiscardHandler),
	}
}

// Option configures Generate and GenerateTable.
type Option func(*options)

// WithCodec sets the codec of the compressed file.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithChunkRows sets how many values are generated and written at once.
func WithChunkRows(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.chunkRows = n
		}
	}
}

// WithResourceController bounds concurrent column generation and write
// throughput.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

// WithSeed sets the base seed used by GenerateTable. Each column derives its
// own seed from it.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithLogger sets the logger. Nil disables logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = slog.New(slog.DiscardHandler)
		}
		o.logger = l
	}
}

func withFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}
