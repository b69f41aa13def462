package colq

import (
	"context"
	"time"

	"github.com/hupe1980/colq/generator"
	"github.com/hupe1980/colq/internal/resource"
)

// Generate writes a table of rows rows into dir, each value null with
// probability nullProbability. Existing raw files are reused; compressed
// files are always rebuilt.
func Generate(ctx context.Context, dir string, rows int, nullProbability float64, optFns ...Option) ([]generator.Result, error) {
	start := time.Now()
	o := applyOptions(optFns)

	gopts := []generator.Option{
		generator.WithSeed(o.seed),
		generator.WithLogger(o.logger.WithDir(dir).Logger),
		generator.WithResourceController(resource.NewController(resource.Config{
			MaxBackgroundWorkers: 2,
			IOLimitBytesPerSec:   o.ioLimit,
		})),
	}
	if o.codec != nil {
		gopts = append(gopts, generator.WithCodec(o.codec))
	}

	results, err := generator.GenerateTable(ctx, dir, rows, nullProbability, gopts...)

	o.metricsCollector.RecordGenerate(rows, time.Since(start), err)
	o.logger.LogGenerate(ctx, dir, results, err)
	return results, err
}
