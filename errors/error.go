package errors

import (
	"fmt"
)

// NilValueError occurs when a value in a Row is null
type NilValueError struct{ Name string }

// Error returns a textual representation of this NilValueError
func (e NilValueError) Error() string {
	return fmt.Sprintf("Value for column %s is nil", e.Name)
}

// IncompatibleRowError occurs when a Row's width does not match an expected Schema
type IncompatibleRowError struct{}

// Error returns a textual representation of this IncompatibleRowError
func (e IncompatibleRowError) Error() string {
	return "Row width is not compatible with Schema"
}

// PartitionFullError occurs when a Partition has reached its max size and a new Row insertion is attempted
type PartitionFullError struct{}

// Error returns a textual representation of this PartitionFullError
func (e PartitionFullError) Error() string {
	return "Partition is full"
}

// NoMorePartitionsError occurs when there are no more partitions in a PartitionIterator
type NoMorePartitionsError struct{}

// Error returns a textual representation of this NoMorePartitionsError
func (e NoMorePartitionsError) Error() string {
	return "No more partitions"
}

// DelimiterCountError is an invalid-argument error which occurs when the
// number of supplied delimiters is neither one nor equal to the number of
// target columns for a flatten
type DelimiterCountError struct {
	NumDelimiters int
	NumColumns    int
}

// Error returns a textual representation of this DelimiterCountError
func (e DelimiterCountError) Error() string {
	return fmt.Sprintf("Delimiter count %d does not match column count %d", e.NumDelimiters, e.NumColumns)
}

// UnsupportedColumnTypeError occurs when a target column's type is not
// supported by an operation
type UnsupportedColumnTypeError struct {
	Name string
	Type interface{}
}

// Error returns a textual representation of this UnsupportedColumnTypeError
func (e UnsupportedColumnTypeError) Error() string {
	return fmt.Sprintf("Column %s has unsupported type %T", e.Name, e.Type)
}

// MixedTargetTypesError is an invalid-argument error which occurs when the
// target columns of a flatten do not all share one type class (text or vector)
type MixedTargetTypesError struct{}

// Error returns a textual representation of this MixedTargetTypesError
func (e MixedTargetTypesError) Error() string {
	return "Target columns must be either all text-typed or all vector-typed"
}

// MultipleVectorTargetsError is an invalid-argument error which occurs when
// more than one vector column is targeted by a single flatten
type MultipleVectorTargetsError struct{}

// Error returns a textual representation of this MultipleVectorTargetsError
func (e MultipleVectorTargetsError) Error() string {
	return "Only one vector column may be flattened per invocation"
}

// VectorLengthError is a type-coercion error which occurs when a vector
// cell's length disagrees with the length declared by its column type
type VectorLengthError struct {
	Name     string
	Expected int
	Actual   int
}

// Error returns a textual representation of this VectorLengthError
func (e VectorLengthError) Error() string {
	return fmt.Sprintf("Vector for column %s has length %d, declared length is %d", e.Name, e.Actual, e.Expected)
}

// TypeCoercionError occurs when a cell's runtime value does not match its
// declared column type
type TypeCoercionError struct {
	Name     string
	Expected string
}

// Error returns a textual representation of this TypeCoercionError
func (e TypeCoercionError) Error() string {
	return fmt.Sprintf("Value for column %s is not a %s", e.Name, e.Expected)
}
