package store

import (
	"log/slog"

	"github.com/hupe1980/colq/block"
	"github.com/hupe1980/colq/codec"
)

// VerifyMode selects how thoroughly Open checks that the compressed source
// agrees with the raw source.
type VerifyMode int

const (
	// VerifyLength decompresses the compressed source once and compares its
	// length with the raw source. This is the default.
	VerifyLength VerifyMode = iota
	// VerifyContent additionally compares every byte.
	VerifyContent
	// VerifyNone trusts the files to agree.
	VerifyNone
)

func (m VerifyMode) String() string {
	switch m {
	case VerifyLength:
		return "length"
	case VerifyContent:
		return "content"
	case VerifyNone:
		return "none"
	default:
		return "unknown"
	}
}

type options struct {
	codec          codec.Codec
	blockSize      int
	readBufferSize int
	verify         VerifyMode
	logger         *slog.Logger
}

func defaultOptions() options {
	return options{
		blockSize:      block.DefaultBlockSize,
		readBufferSize: block.DefaultBlockSize,
		verify:         VerifyLength,
		logger:         slog.New(slog.DiscardHandler),
	}
}

// Option configures Open.
type Option func(*options)

// WithCodec sets the codec of the compressed file.
//
// If unset, the codec is derived from the compressed file's extension and
// falls back to codec.Default.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

// WithBlockSize sets the block size in bytes used by RawIterator. It is
// rounded down to a multiple of the value width.
func WithBlockSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.blockSize = n
		}
	}
}

// WithReadBufferSize sets the buffer size of the decompression reader used
// by CompressedIterator; it bounds the size of decompressed blocks.
func WithReadBufferSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.readBufferSize = n
		}
	}
}

// WithVerify sets the consistency check performed by Open.
func WithVerify(mode VerifyMode) Option {
	return func(o *options) {
		o.verify = mode
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
