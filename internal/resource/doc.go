// Package resource bounds the background work of column generation.
//
// The Controller manages two resource types:
//
//   - Concurrency: limits how many columns are generated at once
//   - IO: token-bucket rate limit on bytes written by the generator
//
// # Background Worker Limits
//
//	rc := resource.NewController(resource.Config{
//	    MaxBackgroundWorkers: 2,
//	})
//
//	err := rc.RunBackground(ctx, func(ctx context.Context) error {
//	    return writeColumn(ctx)
//	})
//
// # IO Rate Limiting
//
//	rc := resource.NewController(resource.Config{
//	    IOLimitBytesPerSec: 100 * 1024 * 1024, // 100MB/s
//	})
//
//	w := resource.NewRateLimitedWriter(ctx, file, rc)
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully - they become no-ops.
// This allows optional resource limiting without nil checks everywhere.
package resource
