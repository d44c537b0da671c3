package schema

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/go-splay/splay"
)

// Column describes the byte offsets of the start
// and end of a field in a Row.
type column struct {
	idx     int
	start   int
	colType splay.ColumnType
}

// Clone returns a copy of this Column
func (c *column) Clone() splay.Column {
	return &column{c.idx, c.start, c.colType}
}

// Index returns the index of this Column within a Schema
func (c *column) Index() int {
	return c.idx
}

// SetIndex modifies the index of this Column within a Schema
func (c *column) SetIndex(newIndex int) {
	c.idx = newIndex
}

// Start returns the Start position of this Column within a Row
func (c *column) Start() int {
	return c.start
}

// Type returns the ColumnType of this Column
func (c *column) Type() splay.ColumnType {
	return c.colType
}

// Schema is a mapping from column names to byte offsets
// within a Row. It allows one to obtain offsets by name,
// define new columns, remove columns, etc.
type schema struct {
	schema map[string]splay.Column
	size   int
}

// CreateSchema is a factory for Schemas
func CreateSchema() splay.Schema {
	return &schema{
		schema: make(map[string]splay.Column),
		size:   0,
	}
}

// Equals returns nil iff this and another Schema are equivalent
func (s *schema) Equals(otherSchema splay.Schema) error {
	if s.Size() != otherSchema.Size() {
		return fmt.Errorf("Schemas have unequal sizes")
	}
	if s.NumFixedLengthColumns() != otherSchema.NumFixedLengthColumns() {
		return fmt.Errorf("Schemas have unequal numbers of fixed-length columns")
	}
	if s.NumVariableLengthColumns() != otherSchema.NumVariableLengthColumns() {
		return fmt.Errorf("Schemas have unequal numbers of variable-length columns")
	}
	return s.ForEachColumn(func(name string, offset splay.Column) error {
		otherOffset, err := otherSchema.GetOffset(name)
		if err != nil {
			return err
		}
		if offset.Start() != otherOffset.Start() {
			return fmt.Errorf("Column %s offsets do not match", name)
		}
		if offset.Index() != otherOffset.Index() {
			return fmt.Errorf("Column %s indices do not match", name)
		}
		if reflect.TypeOf(offset.Type()) != reflect.TypeOf(otherOffset.Type()) {
			return fmt.Errorf("Column %s types do not match", name)
		}
		if offset.Type().Size() != otherOffset.Type().Size() {
			return fmt.Errorf("Column %s type fields do not match", name)
		}
		return nil
	})
}

// Clone returns a copy of this Schema
func (s *schema) Clone() splay.Schema {
	newSchema := make(map[string]splay.Column)
	for k, v := range s.schema {
		newSchema[k] = v.Clone()
	}
	return &schema{schema: newSchema, size: s.size}
}

// RowWidth returns the current byte size of a Row respecting this Schema, without padding
func (s *schema) RowWidth() int {
	return s.size
}

// Size returns the current byte size of a Row respecting this Schema, padded so rows fit neatly into 64 bit chunks
func (s *schema) Size() int {
	if s.size < 16 {
		return 16
	} else if s.size < 32 {
		return 32
	} else if s.size < 64 {
		return 64
	} else if s.size%64 != 0 {
		return ((s.size / 64) + 1) * 64
	} else {
		return (s.size / 64) * 64
	}
}

// NumColumns returns the number of columns (fixed-length and variable-length) in this Schema
func (s *schema) NumColumns() int {
	return len(s.schema)
}

// NumFixedLengthColumns returns the number of fixed-length columns in this Schema
func (s *schema) NumFixedLengthColumns() int {
	i := 0
	for _, col := range s.schema {
		if !splay.IsVariableLength(col.Type()) {
			i++
		}
	}
	return i
}

// NumVariableLengthColumns returns the number of variable-length columns in this Schema
func (s *schema) NumVariableLengthColumns() int {
	i := 0
	for _, col := range s.schema {
		if splay.IsVariableLength(col.Type()) {
			i++
		}
	}
	return i
}

// rebuild recomputes byte offsets by re-inserting every column into a fresh
// Schema in index order. Used after structural changes which alter fixed widths.
func (s *schema) rebuild() *schema {
	newSchema := &schema{
		schema: make(map[string]splay.Column),
	}
	cols := make([]string, 0, len(s.schema))
	for k := range s.schema {
		cols = append(cols, k)
	}
	sort.Slice(cols, func(i, j int) bool {
		return s.schema[cols[i]].Index() < s.schema[cols[j]].Index()
	})
	for _, name := range cols {
		newSchema.CreateColumn(name, s.schema[name].Type())
	}
	return newSchema
}

// GetOffset returns the byte offset of a particular column within a row.
func (s *schema) GetOffset(colName string) (offset splay.Column, err error) {
	offset, ok := s.schema[colName]
	if !ok {
		err = fmt.Errorf("Schema does not contain column with name %s", colName)
	}
	return
}

// HasColumn returns true iff this schema contains a column with the given name
func (s *schema) HasColumn(colName string) bool {
	_, err := s.GetOffset(colName)
	return err == nil
}

// CreateColumn defines a new column within the Schema
func (s *schema) CreateColumn(colName string, columnType splay.ColumnType) (newSchema splay.Schema, err error) {
	_, containsOffset := s.schema[colName]
	if containsOffset {
		err = fmt.Errorf("Schema already contains column with name %s", colName)
	} else {
		if !splay.IsVariableLength(columnType) {
			s.schema[colName] = &column{len(s.schema), s.size, columnType}
			s.size += columnType.Size()
		} else {
			s.schema[colName] = &column{len(s.schema), 0, columnType}
		}
		newSchema = s
	}
	return
}

// RenameColumn renames a column within the Schema
func (s *schema) RenameColumn(oldName string, newName string) (newSchema splay.Schema, err error) {
	_, err = s.GetOffset(oldName)
	if err == nil {
		s.schema[newName] = s.schema[oldName]
		delete(s.schema, oldName)
		newSchema = s
	}
	return
}

// RemoveColumn removes a column from the Schema, recomputing the byte
// offsets of the remaining columns
func (s *schema) RemoveColumn(colName string) (splay.Schema, bool) {
	removed, ok := s.schema[colName]
	if !ok {
		return s, false
	}
	delete(s.schema, colName)
	for _, col := range s.schema {
		if col.Index() > removed.Index() {
			col.SetIndex(col.Index() - 1)
		}
	}
	return s.rebuild(), true
}

// ConvertColumnType replaces the type of an existing column, recomputing
// byte offsets to suit the new fixed width. Values stored under the old
// type are not carried over - Rows must be Repacked to the new Schema.
func (s *schema) ConvertColumnType(colName string, columnType splay.ColumnType) (splay.Schema, error) {
	old, ok := s.schema[colName]
	if !ok {
		return nil, fmt.Errorf("Schema does not contain column with name %s", colName)
	}
	s.schema[colName] = &column{old.Index(), old.Start(), columnType}
	return s.rebuild(), nil
}

// ColumnNames returns the names in the schema, in index order
func (s *schema) ColumnNames() []string {
	names := make([]string, len(s.schema))
	for k, v := range s.schema {
		names[v.Index()] = k
	}
	return names
}

// ColumnTypes returns the types in the schema, in index order
func (s *schema) ColumnTypes() []splay.ColumnType {
	types := make([]splay.ColumnType, len(s.schema))
	for _, v := range s.schema {
		types[v.Index()] = v.Type()
	}
	return types
}

// ForEachColumn iterates over the columns in this Schema. Does not necessarily iterate in order of column index.
func (s *schema) ForEachColumn(fn func(name string, col splay.Column) error) error {
	for k, v := range s.schema {
		err := fn(k, v)
		if err != nil {
			return err
		}
	}
	return nil
}
