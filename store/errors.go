package store

import (
	"errors"
	"fmt"

	"github.com/hupe1980/colq/internal/typed"
)

var (
	// ErrIO is returned when a column file cannot be opened, mapped or read.
	ErrIO = errors.New("column io error")

	// ErrFormatMismatch is returned when a column's files are inconsistent
	// with each other or with the column's value width.
	ErrFormatMismatch = errors.New("column format mismatch")

	// ErrAlignment is returned when a buffer cannot be viewed as the column's
	// value type because of its address.
	ErrAlignment = typed.ErrMisaligned

	// ErrClosed is returned when using a closed column.
	ErrClosed = errors.New("column is closed")
)

// FormatMismatchError describes why a column's sources disagree.
//
// It matches ErrFormatMismatch with errors.Is. The underlying error (if any)
// can be accessed via errors.Unwrap.
type FormatMismatchError struct {
	Path   string
	Reason string
	cause  error
}

func (e *FormatMismatchError) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", ErrFormatMismatch, e.Path, e.Reason)
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

// Is makes the error match ErrFormatMismatch.
func (e *FormatMismatchError) Is(target error) bool { return target == ErrFormatMismatch }

func (e *FormatMismatchError) Unwrap() error { return e.cause }

func ioError(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrIO, op, path, err)
}
