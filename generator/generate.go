// Package generator writes synthetic column files.
//
// Generate writes the raw file of a column from a Source unless it already
// exists, then always (re)compresses the raw file into the compressed file.
// Files are written to a temporary sibling and renamed into place, so an
// interrupted run never leaves a truncated column behind.
//
// GenerateTable produces the two-column table read by colq.OpenTable.
package generator

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/hupe1980/colq/column"
	"github.com/hupe1980/colq/internal/fs"
	"github.com/hupe1980/colq/internal/resource"
	"github.com/hupe1980/colq/internal/typed"
)

// ErrInvalidRows is returned for a negative row count.
var ErrInvalidRows = errors.New("generator: invalid row count")

// Result describes one generated column.
type Result struct {
	Kind           column.Kind
	RawPath        string
	CompressedPath string
	// Rows is the number of values in the raw file.
	Rows int
	// RawSkipped reports that the raw file already existed and was reused.
	RawSkipped      bool
	RawBytes        int64
	CompressedBytes int64
	Duration        time.Duration
}

// Generate writes n values from src to rawPath, unless rawPath already
// exists, and compresses rawPath into compressedPath.
func Generate[T column.Value](ctx context.Context, rawPath, compressedPath string, n int, src Source[T], optFns ...Option) (Result, error) {
	if n < 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidRows, n)
	}

	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	start := time.Now()
	res := Result{
		Kind:           column.KindOf[T](),
		RawPath:        rawPath,
		CompressedPath: compressedPath,
	}

	fi, err := opts.fs.Stat(rawPath)
	switch {
	case err == nil:
		if !fi.Mode().IsRegular() {
			return res, fmt.Errorf("generator: %s is not a regular file", rawPath)
		}
		res.RawSkipped = true
		opts.logger.Debug("raw column exists, skipping", "path", rawPath, "size", fi.Size())
	case errors.Is(err, iofs.ErrNotExist):
		if err := writeRaw(ctx, rawPath, n, src, opts); err != nil {
			return res, err
		}
	default:
		return res, fmt.Errorf("generator: stat raw column: %w", err)
	}

	rawBytes, err := compressFile(ctx, rawPath, compressedPath, opts)
	if err != nil {
		return res, err
	}
	res.RawBytes = rawBytes
	res.Rows = int(rawBytes / int64(column.Width[T]()))

	if fi, err := opts.fs.Stat(compressedPath); err == nil {
		res.CompressedBytes = fi.Size()
	}
	res.Duration = time.Since(start)

	opts.logger.Info("generated column",
		"kind", res.Kind.String(),
		"path", rawPath,
		"rows", res.Rows,
		"raw_skipped", res.RawSkipped,
		"codec", opts.codec.Name(),
		"compressed_bytes", res.CompressedBytes,
		"duration", res.Duration,
	)
	return res, nil
}

func writeRaw[T column.Value](ctx context.Context, path string, n int, src Source[T], opts options) error {
	chunk := make([]T, min(n, opts.chunkRows))
	err := writeFile(opts.fs, path, func(w io.Writer) error {
		w = resource.NewRateLimitedWriter(ctx, w, opts.controller)
		for left := n; left > 0; {
			if err := ctx.Err(); err != nil {
				return err
			}
			batch := chunk[:min(left, len(chunk))]
			for i := range batch {
				batch[i] = src.Next()
			}
			if _, err := w.Write(typed.Bytes(batch)); err != nil {
				return err
			}
			left -= len(batch)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("generator: write raw column %s: %w", path, err)
	}
	return nil
}

// compressFile streams src through the codec into dst and returns the number
// of raw bytes read.
func compressFile(ctx context.Context, src, dst string, opts options) (int64, error) {
	in, err := opts.fs.OpenFile(src, os.O_RDONLY, 0)
	if err != nil {
		return 0, fmt.Errorf("generator: open raw column: %w", err)
	}
	defer in.Close()

	var copied int64
	err = writeFile(opts.fs, dst, func(w io.Writer) error {
		cw, err := opts.codec.NewWriter(resource.NewRateLimitedWriter(ctx, w, opts.controller))
		if err != nil {
			return err
		}
		copied, err = copyContext(ctx, cw, in)
		if err != nil {
			_ = cw.Close()
			return err
		}
		return cw.Close()
	})
	if err != nil {
		return 0, fmt.Errorf("generator: compress %s with %s: %w", src, opts.codec.Name(), err)
	}
	return copied, nil
}

func copyContext(ctx context.Context, dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, 256*1024)
	var n int64
	for {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		nr, rerr := src.Read(buf)
		if nr > 0 {
			nw, werr := dst.Write(buf[:nr])
			n += int64(nw)
			if werr != nil {
				return n, werr
			}
		}
		if rerr == io.EOF {
			return n, nil
		}
		if rerr != nil {
			return n, rerr
		}
	}
}

// writeFile writes path atomically through a temporary file in the same
// directory.
func writeFile(fsys fs.FileSystem, path string, write func(io.Writer) error) error {
	tmpName := path + ".tmp-" + strconv.FormatUint(rand.Uint64(), 36)
	tmp, err := fsys.OpenFile(tmpName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		_ = tmp.Close()
		if tmpName != "" {
			_ = fsys.Remove(tmpName)
		}
	}()

	buf := bufio.NewWriterSize(tmp, 256*1024)
	if err := write(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := fsys.Rename(tmpName, path); err != nil {
		return err
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, err := fsys.OpenFile(filepath.Dir(path), os.O_RDONLY, 0); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	tmpName = ""
	return nil
}
