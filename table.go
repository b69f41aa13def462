package colq

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/colq/codec"
	"github.com/hupe1980/colq/column"
	"github.com/hupe1980/colq/generator"
	"github.com/hupe1980/colq/query"
	"github.com/hupe1980/colq/store"
)

// DefaultDir returns the default table directory, "colq-table" inside the
// system temporary directory.
func DefaultDir() string {
	return filepath.Join(os.TempDir(), "colq-table")
}

// Table is a pair of equally long columns, an int32 column and an int64
// column, zipped by position.
//
// A Table is read-only and safe for concurrent queries. Close waits for
// in-flight queries to finish; queries started after Close fail with
// ErrClosed.
type Table struct {
	dir    string
	int32s *store.Column[int32]
	int64s *store.Column[int64]
	opts   options

	mu     sync.RWMutex // held for reading by queries, for writing by Close
	closed bool
}

// OpenTable opens the table stored in dir: the raw files int32col1.bin and
// int64col1.bin and their compressed counterparts.
func OpenTable(dir string, optFns ...Option) (*Table, error) {
	start := time.Now()
	o := applyOptions(optFns)

	t, err := openTable(dir, o)
	o.metricsCollector.RecordOpen(time.Since(start), err)

	rows := 0
	if t != nil {
		rows = t.Len()
	}
	o.logger.LogOpen(context.Background(), dir, rows, err)

	return t, err
}

func openTable(dir string, o options) (*Table, error) {
	o.logger = o.logger.WithDir(dir)
	if o.codec == nil {
		o.codec = detectCodec(dir)
	}

	raw32, comp32 := generator.Paths(dir, column.Int32, o.codec)
	a, err := store.Open[int32](raw32, comp32, o.storeOptions()...)
	if err != nil {
		return nil, err
	}

	raw64, comp64 := generator.Paths(dir, column.Int64, o.codec)
	b, err := store.Open[int64](raw64, comp64, o.storeOptions()...)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	if a.Len() != b.Len() {
		err := &ErrRowCountMismatch{Int32Rows: a.Len(), Int64Rows: b.Len()}
		return nil, errors.Join(err, a.Close(), b.Close())
	}

	return &Table{
		dir:    dir,
		int32s: a,
		int64s: b,
		opts:   o,
	}, nil
}

// detectCodec returns the first built-in codec whose compressed int32 column
// exists in dir, or codec.Default.
func detectCodec(dir string) codec.Codec {
	raw := filepath.Join(dir, column.Int32.FileName())
	for _, c := range codec.All() {
		if _, err := os.Stat(raw + c.Ext()); err == nil {
			return c
		}
	}
	return codec.Default
}

// Dir returns the table directory.
func (t *Table) Dir() string { return t.dir }

// Len returns the number of rows.
func (t *Table) Len() int { return t.int32s.Len() }

// Codec returns the codec of the compressed files.
func (t *Table) Codec() codec.Codec { return t.int32s.Codec() }

// Int32Column returns the int32 column.
func (t *Table) Int32Column() *store.Column[int32] { return t.int32s }

// Int64Column returns the int64 column.
func (t *Table) Int64Column() *store.Column[int64] { return t.int64s }

// CountNonNull counts the rows where neither column is null.
func (t *Table) CountNonNull(ctx context.Context, mode query.Mode) (int64, error) {
	return t.count(ctx, "count_non_null", mode, func() (int64, error) {
		return query.CountNonNull(t.int32s, t.int64s, mode)
	})
}

// CountWhere counts the rows satisfying pred.
func (t *Table) CountWhere(ctx context.Context, mode query.Mode, pred query.Predicate[int32, int64]) (int64, error) {
	return t.count(ctx, "count_where", mode, func() (int64, error) {
		return query.CountWhere(t.int32s, t.int64s, mode, pred)
	})
}

// Select returns the positions of the rows satisfying pred.
func (t *Table) Select(ctx context.Context, mode query.Mode, pred query.Predicate[int32, int64]) (*roaring.Bitmap, error) {
	var bm *roaring.Bitmap
	_, err := t.count(ctx, "select", mode, func() (int64, error) {
		var err error
		bm, err = query.Select(t.int32s, t.int64s, mode, pred)
		if err != nil {
			return 0, err
		}
		return int64(bm.GetCardinality()), nil
	})
	return bm, err
}

// WarmupResult holds the per-column non-null counts computed by Warmup.
type WarmupResult struct {
	Int32NonNull int64
	Int64NonNull int64
}

// Warmup touches every page of both raw files by counting the non-null
// values of each column through the zero-copy view. The raw files are first
// advised as needed so the kernel can read them in ahead of the scan.
func (t *Table) Warmup(ctx context.Context) (WarmupResult, error) {
	var res WarmupResult
	_, err := t.count(ctx, "warmup_int32", query.ModeView, func() (n int64, err error) {
		if err := errors.Join(t.int32s.WillNeed(), t.int64s.WillNeed()); err != nil {
			return 0, err
		}
		res.Int32NonNull, err = query.CountColumn(t.int32s, query.ModeView)
		return res.Int32NonNull, err
	})
	if err != nil {
		return res, err
	}
	_, err = t.count(ctx, "warmup_int64", query.ModeView, func() (n int64, err error) {
		res.Int64NonNull, err = query.CountColumn(t.int64s, query.ModeView)
		return res.Int64NonNull, err
	})
	return res, err
}

func (t *Table) count(ctx context.Context, name string, mode query.Mode, fn func() (int64, error)) (int64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.closed {
		return 0, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	start := time.Now()
	n, err := fn()
	elapsed := time.Since(start)

	t.opts.metricsCollector.RecordQuery(name, mode, t.Len(), elapsed, err)
	t.opts.logger.LogQuery(ctx, name, mode, n, elapsed, err)
	return n, err
}

// Close unmaps the column files once no query is running. Close is
// idempotent.
func (t *Table) Close() error {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true
	return errors.Join(t.int32s.Close(), t.int64s.Close())
}
