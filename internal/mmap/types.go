package mmap

import "errors"

// AccessPattern is a paging hint for a mapping.
type AccessPattern int

const (
	// AccessNormal removes any previous hint.
	AccessNormal AccessPattern = iota
	// AccessSequential favours read-ahead; used for column scans.
	AccessSequential
	// AccessWillNeed asks the kernel to page the mapping in.
	AccessWillNeed
)

var (
	// ErrClosed is returned when attempting to access a closed mapping.
	ErrClosed = errors.New("mmap: mapping is closed")
	// ErrInvalidSize is returned for files that cannot be mapped: not regular, or too large for the address space.
	ErrInvalidSize = errors.New("mmap: invalid file size")
)
