package splay

import (
	"fmt"
	"strings"
	"time"
)

// IsVariableLength returns true iff colType is a VarColumnType
func IsVariableLength(colType ColumnType) (isVariableLength bool) {
	_, isVariableLength = colType.(VarColumnType)
	return
}

// ColumnType is an interface which is implemented to define a supported fixed-width column type.
// Splay provides a variety of built-in types in this package.
type ColumnType interface {
	Size() int                     // returns size in bytes of a column type
	ToString(v interface{}) string // produces a string representation of a value of this type
}

// BoolColumnType is a column type which stores a boolean value
type BoolColumnType struct{}

// Size in bytes of a BoolColumn
func (b *BoolColumnType) Size() int {
	return 1
}

// ToString produces a string representation of a BoolColumnType value
func (b *BoolColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%t", v.(bool))
}

// Uint32ColumnType is a column type which stores a uint32 value
type Uint32ColumnType struct{}

// Size in bytes of a Uint32Column
func (b *Uint32ColumnType) Size() int {
	return 4
}

// ToString produces a string representation of a Uint32ColumnType value
func (b *Uint32ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(uint32))
}

// Uint64ColumnType is a column type which stores a uint64 value
type Uint64ColumnType struct{}

// Size in bytes of a Uint64Column
func (b *Uint64ColumnType) Size() int {
	return 8
}

// ToString produces a string representation of a Uint64ColumnType value
func (b *Uint64ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(uint64))
}

// Int32ColumnType is a column type which stores an int32 value
type Int32ColumnType struct{}

// Size in bytes of an Int32Column
func (b *Int32ColumnType) Size() int {
	return 4
}

// ToString produces a string representation of an Int32ColumnType value
func (b *Int32ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(int32))
}

// Int64ColumnType is a column type which stores an int64 value
type Int64ColumnType struct{}

// Size in bytes of an Int64Column
func (b *Int64ColumnType) Size() int {
	return 8
}

// ToString produces a string representation of an Int64ColumnType value
func (b *Int64ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(int64))
}

// Float32ColumnType is a column type which stores a float32 value
type Float32ColumnType struct{}

// Size in bytes of a Float32Column
func (b *Float32ColumnType) Size() int {
	return 4
}

// ToString produces a string representation of a Float32ColumnType value
func (b *Float32ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%f", v.(float32))
}

// Float64ColumnType is a column type which stores a float64 value
type Float64ColumnType struct{}

// Size in bytes of a Float64Column
func (b *Float64ColumnType) Size() int {
	return 8
}

// ToString produces a string representation of a Float64ColumnType value
func (b *Float64ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%f", v.(float64))
}

// TimeColumnType is a column type which stores a time.Time value. Because of https://github.com/golang/go/issues/15716, Times stored and retrieved may fail equality tests, despite passing UnixNano() equality tests.
type TimeColumnType struct {
	Format string
}

// Size in bytes of a TimeColumn
func (b *TimeColumnType) Size() int {
	return 15
}

// ToString produces a string representation of a TimeColumnType value
func (b *TimeColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("\"%s\"", v.(time.Time).String())
}

// StringColumnType is a column type which stores fixed-length strings. Useful for hashes, etc.
type StringColumnType struct {
	Length int
}

// Size in bytes of a StringColumn
func (b *StringColumnType) Size() int {
	return b.Length
}

// ToString produces a string representation of a StringColumnType value
func (b *StringColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("\"%s\"", v.(string))
}

// VectorColumnType is a column type which stores a fixed-length vector of
// float64 values. Flattening a VectorColumn produces one row per element,
// with the column narrowed to a Float64Column.
type VectorColumnType struct {
	Length int
}

// Size in bytes of a VectorColumn
func (b *VectorColumnType) Size() int {
	return b.Length * 8
}

// ToString produces a string representation of a VectorColumnType value
func (b *VectorColumnType) ToString(v interface{}) string {
	var res strings.Builder
	fmt.Fprint(&res, "[")
	for i, e := range v.([]float64) {
		if i > 0 {
			fmt.Fprint(&res, ",")
		}
		fmt.Fprintf(&res, "%f", e)
	}
	fmt.Fprint(&res, "]")
	return res.String()
}
