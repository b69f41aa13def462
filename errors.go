package colq

import (
	"errors"
	"fmt"

	"github.com/hupe1980/colq/query"
	"github.com/hupe1980/colq/store"
)

var (
	// ErrClosed is returned when using a closed Table.
	ErrClosed = errors.New("colq: table is closed")

	// ErrIO reports a missing or unreadable column file.
	ErrIO = store.ErrIO

	// ErrFormatMismatch reports column files that are not valid columns of
	// the expected kind, or that disagree with each other.
	ErrFormatMismatch = store.ErrFormatMismatch
)

// ErrRowCountMismatch indicates table columns of different lengths.
//
// It matches query.ErrLengthMismatch via errors.Is.
type ErrRowCountMismatch struct {
	Int32Rows int
	Int64Rows int
}

func (e *ErrRowCountMismatch) Error() string {
	return fmt.Sprintf("row count mismatch: int32 column has %d rows, int64 column has %d", e.Int32Rows, e.Int64Rows)
}

func (e *ErrRowCountMismatch) Unwrap() error { return query.ErrLengthMismatch }
