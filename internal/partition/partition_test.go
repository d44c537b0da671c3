package partition

import (
	"testing"

	"github.com/go-splay/splay"
	errors "github.com/go-splay/splay/errors"
	"github.com/go-splay/splay/schema"
	"github.com/stretchr/testify/require"
)

func createPartitionTestSchema() splay.Schema {
	s := schema.CreateSchema()
	s.CreateColumn("col1", &splay.Uint64ColumnType{})
	return s
}

func TestCreatePartition(t *testing.T) {
	s := createPartitionTestSchema()
	part := createPartitionImpl(4, s)
	require.Equal(t, 4, part.GetMaxRows())
	require.Equal(t, 0, part.GetNumRows())
	require.Nil(t, part.CanInsertRowData(make([]byte, 8)))
	require.NotNil(t, part.CanInsertRowData(make([]byte, 18))) // rows are padded to at least 16 bytes
}

func TestAppendRowData(t *testing.T) {
	s := createPartitionTestSchema()
	part := createPartitionImpl(2, s)
	row, err := part.AppendEmptyRowData(CreateTempRow())
	require.Nil(t, err)
	require.Nil(t, row.SetUint64("col1", 1))
	require.Equal(t, 1, part.GetNumRows())
	row, err = part.AppendEmptyRowData(CreateTempRow())
	require.Nil(t, err)
	require.Nil(t, row.SetUint64("col1", 2))
	require.Equal(t, 2, part.GetNumRows())
	// partition is now full
	_, err = part.AppendEmptyRowData(CreateTempRow())
	require.IsType(t, errors.PartitionFullError{}, err)

	val, err := part.GetRow(0).GetUint64("col1")
	require.Nil(t, err)
	require.Equal(t, uint64(1), val)
	val, err = part.GetRow(1).GetUint64("col1")
	require.Nil(t, err)
	require.Equal(t, uint64(2), val)
}

func TestMapRows(t *testing.T) {
	s := createPartitionTestSchema()
	part := createPartitionImpl(4, s)
	for i := 0; i < 4; i++ {
		row, err := part.AppendEmptyRowData(CreateTempRow())
		require.Nil(t, err)
		require.Nil(t, row.SetUint64("col1", uint64(i)))
	}
	result, err := part.MapRows(func(row splay.Row) error {
		v, err := row.GetUint64("col1")
		if err != nil {
			return err
		}
		return row.SetUint64("col1", v*2)
	})
	require.Nil(t, err)
	require.Equal(t, 4, result.GetNumRows())
	for i := 0; i < 4; i++ {
		v, err := result.GetRow(i).GetUint64("col1")
		require.Nil(t, err)
		require.Equal(t, uint64(i*2), v)
	}
}

func TestFilterRows(t *testing.T) {
	s := createPartitionTestSchema()
	part := createPartitionImpl(4, s)
	for i := 0; i < 4; i++ {
		row, err := part.AppendEmptyRowData(CreateTempRow())
		require.Nil(t, err)
		require.Nil(t, row.SetUint64("col1", uint64(i)))
	}
	result, err := part.FilterRows(func(row splay.Row) (bool, error) {
		v, err := row.GetUint64("col1")
		if err != nil {
			return false, err
		}
		return v%2 == 0, nil
	})
	require.Nil(t, err)
	require.Equal(t, 2, result.GetNumRows())
	v, err := result.GetRow(1).GetUint64("col1")
	require.Nil(t, err)
	require.Equal(t, uint64(2), v)
}

func TestFlatMapRows(t *testing.T) {
	s := createPartitionTestSchema()
	part := createPartitionImpl(2, s)
	for i := 0; i < 2; i++ {
		row, err := part.AppendEmptyRowData(CreateTempRow())
		require.Nil(t, err)
		require.Nil(t, row.SetUint64("col1", uint64(i)))
	}
	// each row produces three copies, overflowing maxRows and chaining
	// additional output partitions
	results, err := part.FlatMapRows(func(row splay.Row, newRow splay.RowFactory) ([]splay.Row, error) {
		v, err := row.GetUint64("col1")
		if err != nil {
			return nil, err
		}
		out := make([]splay.Row, 3)
		for i := range out {
			r := newRow()
			if err := r.SetUint64("col1", v); err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	}, nil)
	require.Nil(t, err)
	numRows := 0
	for _, p := range results {
		numRows += p.GetNumRows()
	}
	require.Equal(t, 6, numRows)
	require.True(t, len(results) >= 3)
}

func TestFlatMapRowsNarrowsSchema(t *testing.T) {
	s := schema.CreateSchema()
	s.CreateColumn("vec", &splay.VectorColumnType{Length: 2})
	part := createPartitionImpl(4, s)
	row, err := part.AppendEmptyRowData(CreateTempRow())
	require.Nil(t, err)
	require.Nil(t, row.SetVector("vec", []float64{1.0, 2.0}))

	narrowed, err := s.Clone().ConvertColumnType("vec", &splay.Float64ColumnType{})
	require.Nil(t, err)
	results, err := part.FlatMapRows(func(row splay.Row, newRow splay.RowFactory) ([]splay.Row, error) {
		vec, err := row.GetVector("vec")
		if err != nil {
			return nil, err
		}
		out := make([]splay.Row, len(vec))
		for i, v := range vec {
			r := newRow()
			if err := r.SetFloat64("vec", v); err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	}, narrowed)
	require.Nil(t, err)
	require.Equal(t, 1, len(results))
	require.Equal(t, 2, results[0].GetNumRows())
	require.Nil(t, results[0].GetSchema().Equals(narrowed))
	v, err := results[0].GetRow(1).GetFloat64("vec")
	require.Nil(t, err)
	require.Equal(t, 2.0, v)
}

func TestUpdateSchemaRemapsVarData(t *testing.T) {
	s := schema.CreateSchema()
	s.CreateColumn("fixed", &splay.Uint64ColumnType{})
	s.CreateColumn("var", &splay.VarStringColumnType{})
	part := createPartitionImpl(4, s)
	row, err := part.AppendEmptyRowData(CreateTempRow())
	require.Nil(t, err)
	require.Nil(t, row.SetUint64("fixed", 1))
	require.Nil(t, row.SetVarString("var", "hello"))

	renamed, err := s.Clone().RenameColumn("var", "renamed")
	require.Nil(t, err)
	require.Nil(t, part.UpdateSchema(renamed))
	v, err := part.GetRow(0).GetVarString("renamed")
	require.Nil(t, err)
	require.Equal(t, "hello", v)

	// layout-incompatible schemas are rejected
	widened, err := s.Clone().CreateColumn("extra", &splay.Uint64ColumnType{})
	require.Nil(t, err)
	require.NotNil(t, part.UpdateSchema(widened))
}
