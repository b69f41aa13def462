// Package column defines the fixed-width value kinds stored by colq and their
// in-band null encoding.
//
// # Kinds
//
// The set of kinds is closed: Int32 and Int64. Each kind carries a row in a
// static table describing its width, its null sentinel and the bound used by
// the synthetic data generator.
//
// # Null Encoding
//
// There is no validity bitmap. A value is null iff it equals the minimum
// representable value of its type:
//
//	column.IsNull(int32(math.MinInt32)) // true
//	column.IsNull(int64(0))             // false
//
// The true minimum is therefore not representable as data.
package column

import (
	"fmt"
	"math"
	"strings"
)

// Value is the set of Go types a column can hold.
type Value interface {
	int32 | int64
}

// Kind identifies a fixed-width column type.
type Kind uint8

const (
	// Invalid is the zero Kind.
	Invalid Kind = iota
	// Int32 is a 4-byte signed integer column.
	Int32
	// Int64 is an 8-byte signed integer column.
	Int64
)

type kindInfo struct {
	name  string
	width int
	null  int64
	// bound is the exclusive magnitude of generated non-null values.
	bound int64
}

var kinds = [...]kindInfo{
	Invalid: {name: "invalid"},
	Int32:   {name: "int32", width: 4, null: math.MinInt32, bound: 100},
	Int64:   {name: "int64", width: 8, null: math.MinInt64, bound: 10000},
}

// Kinds returns all valid kinds.
func Kinds() []Kind {
	return []Kind{Int32, Int64}
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	return k == Int32 || k == Int64
}

// Width returns the size of one value in bytes (0 for Invalid).
func (k Kind) Width() int {
	if !k.Valid() {
		return 0
	}
	return kinds[k].width
}

// Null returns the null sentinel of k widened to int64.
func (k Kind) Null() int64 {
	if !k.Valid() {
		return 0
	}
	return kinds[k].null
}

// Bound returns the exclusive magnitude of generated non-null values.
func (k Kind) Bound() int64 {
	if !k.Valid() {
		return 0
	}
	return kinds[k].bound
}

func (k Kind) String() string {
	if int(k) >= len(kinds) {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kinds[k].name
}

// ParseKind parses a kind name such as "int32".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "int32", "i32":
		return Int32, nil
	case "int64", "i64":
		return Int64, nil
	default:
		return Invalid, fmt.Errorf("column: unknown kind %q", s)
	}
}

// KindOf returns the Kind stored by Go type T.
func KindOf[T Value]() Kind {
	var zero T
	switch any(zero).(type) {
	case int32:
		return Int32
	default:
		return Int64
	}
}

// Width returns the size of one T in bytes.
func Width[T Value]() int {
	return KindOf[T]().Width()
}

// Null returns the null sentinel of T.
func Null[T Value]() T {
	return T(KindOf[T]().Null())
}

// IsNull reports whether v is the null sentinel of its type.
func IsNull[T Value](v T) bool {
	return v == Null[T]()
}

// FileName returns the conventional raw file name of a table column of kind
// k, e.g. "int32col1.bin".
func (k Kind) FileName() string {
	return k.String() + "col1.bin"
}
