package resource

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// busy reports whether every worker slot is taken.
func busy(t *testing.T, c *Controller) bool {
	t.Helper()
	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()
	if err := c.AcquireBackground(ctx); err != nil {
		return true
	}
	c.ReleaseBackground()
	return false
}

func TestController_Concurrency(t *testing.T) {
	c := NewController(Config{MaxBackgroundWorkers: 2})

	// Acquire 2
	require.NoError(t, c.AcquireBackground(t.Context()))
	require.NoError(t, c.AcquireBackground(t.Context()))

	// 3rd waits until the context expires
	assert.True(t, busy(t, c))

	// Release 1
	c.ReleaseBackground()
	assert.False(t, busy(t, c))
}

func TestController_DefaultWorkers(t *testing.T) {
	c := NewController(Config{})
	require.NoError(t, c.AcquireBackground(t.Context()))
	assert.True(t, busy(t, c))
	c.ReleaseBackground()
}

func TestController_IO(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1000}) // 1KB/s

	// Small acquire fits the burst
	assert.NoError(t, c.AcquireIO(t.Context(), 100))

	// Larger than burst would wait; a cancelled context surfaces the error
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	assert.Error(t, c.AcquireIO(ctx, 5000))

	// Unlimited
	c2 := NewController(Config{})
	assert.NoError(t, c2.AcquireIO(t.Context(), 1000000))
}

func TestController_NilChecks(t *testing.T) {
	var c *Controller
	assert.NoError(t, c.AcquireBackground(t.Context()))
	c.ReleaseBackground() // Should not panic
	assert.NoError(t, c.AcquireIO(t.Context(), 10))
	assert.False(t, busy(t, c))
}

func TestRateLimitedWriter(t *testing.T) {
	var buf bytes.Buffer
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})
	w := NewRateLimitedWriter(t.Context(), &buf, c)

	n, err := w.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "abc", buf.String())

	// nil controller passes through
	w = NewRateLimitedWriter(t.Context(), &buf, nil)
	_, err = w.Write([]byte("d"))
	require.NoError(t, err)
	assert.Equal(t, "abcd", buf.String())
}

func TestRateLimitedWriter_Chunks(t *testing.T) {
	var buf bytes.Buffer
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})
	w := NewRateLimitedWriter(t.Context(), &buf, c)

	payload := bytes.Repeat([]byte{7}, 1<<20+5)
	n, err := w.Write(payload)
	require.NoError(t, err)
	assert.Equal(t, len(payload), n)
	assert.Equal(t, payload, buf.Bytes())
}

func TestRateLimitedWriter_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	var buf bytes.Buffer
	w := NewRateLimitedWriter(ctx, &buf, nil)
	n, err := w.Write([]byte("abc"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
	assert.Zero(t, buf.Len())
}

func TestController_RunBackground(t *testing.T) {
	c := NewController(Config{MaxBackgroundWorkers: 1})

	ran := false
	err := c.RunBackground(t.Context(), func(ctx context.Context) error {
		ran = true
		assert.True(t, busy(t, c), "slot is held while fn runs")
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
	assert.False(t, busy(t, c), "slot is released afterwards")

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	var nilController *Controller
	err = nilController.RunBackground(ctx, func(context.Context) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
