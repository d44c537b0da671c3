package schema

import (
	"testing"

	"github.com/go-splay/splay"
	"github.com/stretchr/testify/require"
)

func TestSchemaEqualityBasic(t *testing.T) {
	schema1 := CreateSchema()
	_, err := schema1.CreateColumn("col1", &splay.Uint64ColumnType{})
	require.Nil(t, err)
	_, err = schema1.CreateColumn("col2", &splay.VarStringColumnType{})
	require.Nil(t, err)
	_, err = schema1.CreateColumn("col3", &splay.StringColumnType{Length: 12})
	require.Nil(t, err)

	schema2 := CreateSchema()
	_, err = schema2.CreateColumn("col1", &splay.Uint64ColumnType{})
	require.Nil(t, err)
	_, err = schema2.CreateColumn("col2", &splay.VarStringColumnType{})
	require.Nil(t, err)
	_, err = schema2.CreateColumn("col3", &splay.StringColumnType{Length: 12})
	require.Nil(t, err)

	require.Nil(t, schema1.Equals(schema2))
}

func TestSchemaEqualityDifferentLength(t *testing.T) {
	schema1 := CreateSchema()
	_, err := schema1.CreateColumn("col1", &splay.Uint64ColumnType{})
	require.Nil(t, err)
	_, err = schema1.CreateColumn("col2", &splay.StringColumnType{Length: 12})
	require.Nil(t, err)

	schema2 := CreateSchema()
	_, err = schema2.CreateColumn("col1", &splay.Uint64ColumnType{})
	require.Nil(t, err)
	_, err = schema2.CreateColumn("col2", &splay.StringColumnType{Length: 13})
	require.Nil(t, err)

	require.NotNil(t, schema1.Equals(schema2))
}

func TestSchemaOffsets(t *testing.T) {
	s := CreateSchema()
	_, err := s.CreateColumn("col1", &splay.Uint64ColumnType{})
	require.Nil(t, err)
	_, err = s.CreateColumn("col2", &splay.Float64ColumnType{})
	require.Nil(t, err)
	_, err = s.CreateColumn("col3", &splay.StringColumnType{Length: 4})
	require.Nil(t, err)

	col1, err := s.GetOffset("col1")
	require.Nil(t, err)
	require.Equal(t, 0, col1.Start())
	require.Equal(t, 0, col1.Index())
	col2, err := s.GetOffset("col2")
	require.Nil(t, err)
	require.Equal(t, 8, col2.Start())
	col3, err := s.GetOffset("col3")
	require.Nil(t, err)
	require.Equal(t, 16, col3.Start())
	require.Equal(t, 20, s.RowWidth())
	require.Equal(t, 32, s.Size())
}

func TestSchemaRemoveColumn(t *testing.T) {
	s := CreateSchema()
	_, err := s.CreateColumn("col1", &splay.Uint64ColumnType{})
	require.Nil(t, err)
	_, err = s.CreateColumn("col2", &splay.Uint32ColumnType{})
	require.Nil(t, err)
	_, err = s.CreateColumn("col3", &splay.Float64ColumnType{})
	require.Nil(t, err)

	newSchema, removed := s.RemoveColumn("col2")
	require.True(t, removed)
	require.False(t, newSchema.HasColumn("col2"))
	require.Equal(t, 2, newSchema.NumColumns())
	// offsets and indices are recomputed immediately
	col3, err := newSchema.GetOffset("col3")
	require.Nil(t, err)
	require.Equal(t, 1, col3.Index())
	require.Equal(t, 8, col3.Start())
	require.Equal(t, 16, newSchema.RowWidth())

	_, removed = newSchema.RemoveColumn("nonexistent")
	require.False(t, removed)
}

func TestSchemaConvertColumnType(t *testing.T) {
	s := CreateSchema()
	_, err := s.CreateColumn("col1", &splay.VectorColumnType{Length: 3})
	require.Nil(t, err)
	_, err = s.CreateColumn("col2", &splay.Uint32ColumnType{})
	require.Nil(t, err)
	require.Equal(t, 28, s.RowWidth())

	narrowed, err := s.ConvertColumnType("col1", &splay.Float64ColumnType{})
	require.Nil(t, err)
	col1, err := narrowed.GetOffset("col1")
	require.Nil(t, err)
	require.IsType(t, &splay.Float64ColumnType{}, col1.Type())
	require.Equal(t, 0, col1.Index())
	// col2 shifts left to suit the narrowed width
	col2, err := narrowed.GetOffset("col2")
	require.Nil(t, err)
	require.Equal(t, 8, col2.Start())
	require.Equal(t, 12, narrowed.RowWidth())

	_, err = s.ConvertColumnType("nonexistent", &splay.Float64ColumnType{})
	require.NotNil(t, err)
}

func TestSchemaRenameColumn(t *testing.T) {
	s := CreateSchema()
	_, err := s.CreateColumn("col1", &splay.Uint64ColumnType{})
	require.Nil(t, err)
	renamed, err := s.RenameColumn("col1", "renamed")
	require.Nil(t, err)
	require.True(t, renamed.HasColumn("renamed"))
	require.False(t, renamed.HasColumn("col1"))

	_, err = renamed.RenameColumn("nonexistent", "other")
	require.NotNil(t, err)
}

func TestSchemaColumnNamesInIndexOrder(t *testing.T) {
	s := CreateSchema()
	_, err := s.CreateColumn("b", &splay.Uint64ColumnType{})
	require.Nil(t, err)
	_, err = s.CreateColumn("a", &splay.VarStringColumnType{})
	require.Nil(t, err)
	_, err = s.CreateColumn("c", &splay.Uint32ColumnType{})
	require.Nil(t, err)
	require.Equal(t, []string{"b", "a", "c"}, s.ColumnNames())
	types := s.ColumnTypes()
	require.IsType(t, &splay.Uint64ColumnType{}, types[0])
	require.IsType(t, &splay.VarStringColumnType{}, types[1])
	require.IsType(t, &splay.Uint32ColumnType{}, types[2])
}
