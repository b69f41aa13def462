package resource

import (
	"context"
	"io"
)

// RateLimitedWriter throttles writes through a Controller's IO limit and
// stops writing once its context is done.
type RateLimitedWriter struct {
	ctx context.Context
	w   io.Writer
	rc  *Controller
}

// NewRateLimitedWriter wraps w. A nil Controller only adds cancellation.
func NewRateLimitedWriter(ctx context.Context, w io.Writer, rc *Controller) *RateLimitedWriter {
	return &RateLimitedWriter{
		ctx: ctx,
		w:   w,
		rc:  rc,
	}
}

// Write implements io.Writer. Large writes are passed through in chunks no
// larger than the limiter's burst, so progress is spread over time.
func (w *RateLimitedWriter) Write(p []byte) (int, error) {
	chunk := len(p)
	if w.rc != nil && w.rc.ioLimiter != nil {
		chunk = min(chunk, w.rc.ioLimiter.Burst())
	}

	var written int
	for written < len(p) || len(p) == 0 {
		if err := w.ctx.Err(); err != nil {
			return written, err
		}
		n := min(chunk, len(p)-written)
		if err := w.rc.AcquireIO(w.ctx, n); err != nil {
			return written, err
		}
		m, err := w.w.Write(p[written : written+n])
		written += m
		if err != nil || len(p) == 0 {
			return written, err
		}
	}
	return written, nil
}
