package generator

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/colq/codec"
	"github.com/hupe1980/colq/column"
	"github.com/hupe1980/colq/internal/resource"
)

// Paths returns the raw and compressed file paths of the table column of
// kind k inside dir.
func Paths(dir string, k column.Kind, c codec.Codec) (raw, compressed string) {
	raw = filepath.Join(dir, k.FileName())
	return raw, raw + c.Ext()
}

// GenerateTable generates an int32 and an int64 column of n rows in dir, each
// value null with probability nullProbability. The columns are generated
// concurrently, bounded by the resource controller's background slots.
//
// Results are ordered as column.Kinds.
func GenerateTable(ctx context.Context, dir string, n int, nullProbability float64, optFns ...Option) ([]Result, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.controller == nil {
		opts.controller = resource.NewController(resource.Config{MaxBackgroundWorkers: 2})
	}
	optFns = append(optFns, WithResourceController(opts.controller))

	if err := opts.fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("generator: create table dir: %w", err)
	}

	results := make([]Result, 2)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		raw, comp := Paths(dir, column.Int32, opts.codec)
		src := NewRandomSource[int32](opts.seed, nullProbability)
		return opts.controller.RunBackground(gctx, func(ctx context.Context) (err error) {
			results[0], err = Generate(ctx, raw, comp, n, src, optFns...)
			return err
		})
	})
	g.Go(func() error {
		raw, comp := Paths(dir, column.Int64, opts.codec)
		src := NewRandomSource[int64](opts.seed+1, nullProbability)
		return opts.controller.RunBackground(gctx, func(ctx context.Context) (err error) {
			results[1], err = Generate(ctx, raw, comp, n, src, optFns...)
			return err
		})
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
