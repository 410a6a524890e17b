// Package guard provides guard clauses for numeric arguments.
//
// Every guard returns nil when the argument is acceptable and otherwise an error
// that wraps ErrOutOfRange and names the argument.
package guard

import (
	"cmp"
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when an argument violates a guard clause.
var ErrOutOfRange = errors.New("argument out of range")

// Number is the set of built-in numeric types and types derived from them.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// NotNegative guards against values below zero.
func NotNegative[T Number](name string, value T) error {
	if value < 0 {
		return outOfRange(name, "must not be negative", value)
	}

	return nil
}

// Positive guards against values of zero or below.
func Positive[T Number](name string, value T) error {
	if value <= 0 {
		return outOfRange(name, "must be positive", value)
	}

	return nil
}

// NotZero guards against the zero value of T.
func NotZero[T comparable](name string, value T) error {
	var zero T
	if value == zero {
		return outOfRange(name, "must not be zero", value)
	}

	return nil
}

// InRange guards against values outside [lowest, highest]. Both bounds are inclusive.
// NaN sorts below every other value and is therefore never in range of non-NaN bounds.
func InRange[T cmp.Ordered](name string, value, lowest, highest T) error {
	if cmp.Compare(value, lowest) < 0 || cmp.Compare(value, highest) > 0 {
		return outOfRange(name, fmt.Sprintf("must be between %v and %v", lowest, highest), value)
	}

	return nil
}

func outOfRange(name string, constraint string, value any) error {
	return errors.Join(ErrOutOfRange, fmt.Errorf("%s %s, got %v", name, constraint, value))
}
