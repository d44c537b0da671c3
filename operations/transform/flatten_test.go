package transform

import (
	"context"
	"testing"

	"github.com/go-splay/splay"
	"github.com/go-splay/splay/datasource"
	errors "github.com/go-splay/splay/errors"
	itypes "github.com/go-splay/splay/internal/types"
	"github.com/go-splay/splay/schema"
	"github.com/stretchr/testify/require"
)

// buildFlattenTask validates a Flatten against a Schema and returns its Task
// and output Schema, without running a full job
func buildFlattenTask(t *testing.T, s splay.Schema, op *splay.DataFrameOperation) (splay.Task, splay.Schema) {
	frame := datasource.CreateDataFrame(nil, nil, s)
	next, err := frame.To(op)
	require.Nil(t, err)
	eframe, ok := next.(itypes.ExecutableDataFrame)
	require.True(t, ok)
	return eframe.GetTask(), next.GetSchema()
}

func runFlattenTask(t *testing.T, task splay.Task, part splay.OperablePartition) []splay.Row {
	results, err := task.RunWorker(context.Background(), part)
	require.Nil(t, err)
	var rows []splay.Row
	for _, p := range results {
		for i := 0; i < p.GetNumRows(); i++ {
			rows = append(rows, p.GetRow(i))
		}
	}
	return rows
}

func createTextTestPartition(t *testing.T, s splay.Schema, vals map[string]string, id uint64) splay.OperablePartition {
	part := datasource.CreateBuildablePartition(8, s)
	row, err := part.AppendEmptyRowData(datasource.CreateTempRow())
	require.Nil(t, err)
	require.Nil(t, row.SetUint64("id", id))
	for name, val := range vals {
		require.Nil(t, row.SetVarString(name, val))
	}
	return part.(splay.OperablePartition)
}

func createTextTestSchema(textCols ...string) splay.Schema {
	s := schema.CreateSchema()
	s.CreateColumn("id", &splay.Uint64ColumnType{})
	for _, name := range textCols {
		s.CreateColumn(name, &splay.VarStringColumnType{})
	}
	return s
}

func TestFlattenSingleTextColumn(t *testing.T) {
	s := createTextTestSchema("tags")
	task, outSchema := buildFlattenTask(t, s, Flatten([]string{"tags"}))
	require.Nil(t, outSchema.Equals(s))
	part := createTextTestPartition(t, s, map[string]string{"tags": "a,b,c"}, 7)
	rows := runFlattenTask(t, task, part)
	require.Equal(t, 3, len(rows))
	for i, expected := range []string{"a", "b", "c"} {
		v, err := rows[i].GetVarString("tags")
		require.Nil(t, err)
		require.Equal(t, expected, v)
		id, err := rows[i].GetUint64("id")
		require.Nil(t, err)
		require.Equal(t, uint64(7), id)
	}
}

func TestFlattenFixedWidthTextColumn(t *testing.T) {
	s := schema.CreateSchema()
	s.CreateColumn("id", &splay.Uint64ColumnType{})
	s.CreateColumn("tags", &splay.StringColumnType{Length: 8})
	task, _ := buildFlattenTask(t, s, Flatten([]string{"tags"}))
	part := datasource.CreateBuildablePartition(8, s)
	row, err := part.AppendEmptyRowData(datasource.CreateTempRow())
	require.Nil(t, err)
	require.Nil(t, row.SetUint64("id", 1))
	require.Nil(t, row.SetString("tags", "ab,cd"))
	rows := runFlattenTask(t, task, part.(splay.OperablePartition))
	require.Equal(t, 2, len(rows))
	// short tokens are zero-padded to the declared width, not left with
	// bytes of the pre-split value
	for i, expected := range []string{"ab", "cd"} {
		v, err := rows[i].GetString("tags")
		require.Nil(t, err)
		require.Equal(t, expected+"\x00\x00\x00\x00\x00\x00", v)
	}
}

func TestFlattenNoSplitPassThrough(t *testing.T) {
	s := createTextTestSchema("tags")
	task, _ := buildFlattenTask(t, s, Flatten([]string{"tags"}))
	part := createTextTestPartition(t, s, map[string]string{"tags": "solo"}, 3)
	rows := runFlattenTask(t, task, part)
	require.Equal(t, 1, len(rows))
	v, err := rows[0].GetVarString("tags")
	require.Nil(t, err)
	require.Equal(t, "solo", v)
	id, err := rows[0].GetUint64("id")
	require.Nil(t, err)
	require.Equal(t, uint64(3), id)
}

func TestFlattenIdempotence(t *testing.T) {
	s := createTextTestSchema("tags")
	task, _ := buildFlattenTask(t, s, Flatten([]string{"tags"}))
	part := createTextTestPartition(t, s, map[string]string{"tags": "a,b"}, 1)
	results, err := task.RunWorker(context.Background(), part)
	require.Nil(t, err)
	require.Equal(t, 1, len(results))
	require.Equal(t, 2, results[0].GetNumRows())
	// a second pass over already-flattened rows is a row-for-row no-op
	rows := runFlattenTask(t, task, results[0])
	require.Equal(t, 2, len(rows))
	for i, expected := range []string{"a", "b"} {
		v, err := rows[i].GetVarString("tags")
		require.Nil(t, err)
		require.Equal(t, expected, v)
	}
}

func TestFlattenVectorColumn(t *testing.T) {
	s := schema.CreateSchema()
	s.CreateColumn("id", &splay.Uint64ColumnType{})
	s.CreateColumn("vec", &splay.VectorColumnType{Length: 3})
	task, outSchema := buildFlattenTask(t, s, Flatten([]string{"vec"}))
	col, err := outSchema.GetOffset("vec")
	require.Nil(t, err)
	require.IsType(t, &splay.Float64ColumnType{}, col.Type())

	part := datasource.CreateBuildablePartition(8, s)
	row, err := part.AppendEmptyRowData(datasource.CreateTempRow())
	require.Nil(t, err)
	require.Nil(t, row.SetUint64("id", 9))
	require.Nil(t, row.SetVector("vec", []float64{1.0, 2.0, 3.0}))
	rows := runFlattenTask(t, task, part.(splay.OperablePartition))
	require.Equal(t, 3, len(rows))
	for i, expected := range []float64{1.0, 2.0, 3.0} {
		v, err := rows[i].GetFloat64("vec")
		require.Nil(t, err)
		require.Equal(t, expected, v)
		id, err := rows[i].GetUint64("id")
		require.Nil(t, err)
		require.Equal(t, uint64(9), id)
	}
}

func TestFlattenTwoColumnAlignment(t *testing.T) {
	s := createTextTestSchema("a", "b")
	task, _ := buildFlattenTask(t, s, Flatten([]string{"a", "b"}))
	part := createTextTestPartition(t, s, map[string]string{"a": "x,y", "b": "p"}, 1)
	rows := runFlattenTask(t, task, part)
	require.Equal(t, 2, len(rows))
	// a splits first, creating both rows with b blanked; b then writes its
	// unsplit value into row 0 only
	av, err := rows[0].GetVarString("a")
	require.Nil(t, err)
	require.Equal(t, "x", av)
	bv, err := rows[0].GetVarString("b")
	require.Nil(t, err)
	require.Equal(t, "p", bv)
	av, err = rows[1].GetVarString("a")
	require.Nil(t, err)
	require.Equal(t, "y", av)
	bv, err = rows[1].GetVarString("b")
	require.Nil(t, err)
	require.Equal(t, "", bv)
}

func TestFlattenColumnProcessingOrder(t *testing.T) {
	s := createTextTestSchema("a", "b")
	// with b listed first, the non-splitting column is processed while the
	// buffer is empty, so the original row seeds position 0 before a splits
	task, _ := buildFlattenTask(t, s, Flatten([]string{"b", "a"}))
	part := createTextTestPartition(t, s, map[string]string{"a": "x,y", "b": "p"}, 1)
	rows := runFlattenTask(t, task, part)
	require.Equal(t, 2, len(rows))
	av, err := rows[0].GetVarString("a")
	require.Nil(t, err)
	require.Equal(t, "x", av)
	bv, err := rows[0].GetVarString("b")
	require.Nil(t, err)
	require.Equal(t, "p", bv)
	av, err = rows[1].GetVarString("a")
	require.Nil(t, err)
	require.Equal(t, "y", av)
	bv, err = rows[1].GetVarString("b")
	require.Nil(t, err)
	require.Equal(t, "", bv)
}

func TestFlattenBothColumnsSplit(t *testing.T) {
	s := createTextTestSchema("a", "b")
	task, _ := buildFlattenTask(t, s, Flatten([]string{"a", "b"}))
	part := createTextTestPartition(t, s, map[string]string{"a": "x,y", "b": "p,q,r"}, 1)
	rows := runFlattenTask(t, task, part)
	// tokens align positionally; b's third token creates a row with a blanked
	require.Equal(t, 3, len(rows))
	expected := [][2]string{{"x", "p"}, {"y", "q"}, {"", "r"}}
	for i, pair := range expected {
		av, err := rows[i].GetVarString("a")
		require.Nil(t, err)
		require.Equal(t, pair[0], av)
		bv, err := rows[i].GetVarString("b")
		require.Nil(t, err)
		require.Equal(t, pair[1], bv)
	}
}

func TestFlattenDelimiterBroadcast(t *testing.T) {
	s := createTextTestSchema("a", "b")
	task, _ := buildFlattenTask(t, s, Flatten([]string{"a", "b"}, ";"))
	part := createTextTestPartition(t, s, map[string]string{"a": "x;y", "b": "p;q"}, 1)
	rows := runFlattenTask(t, task, part)
	require.Equal(t, 2, len(rows))
	av, err := rows[1].GetVarString("a")
	require.Nil(t, err)
	require.Equal(t, "y", av)
	bv, err := rows[1].GetVarString("b")
	require.Nil(t, err)
	require.Equal(t, "q", bv)
}

func TestFlattenDelimiterCountMismatch(t *testing.T) {
	s := createTextTestSchema("a", "b", "c")
	frame := datasource.CreateDataFrame(nil, nil, s)
	_, err := frame.To(Flatten([]string{"a", "b", "c"}, ",", ";"))
	require.IsType(t, errors.DelimiterCountError{}, err)
}

func TestFlattenUnsupportedColumnType(t *testing.T) {
	s := schema.CreateSchema()
	s.CreateColumn("flag", &splay.BoolColumnType{})
	frame := datasource.CreateDataFrame(nil, nil, s)
	_, err := frame.To(Flatten([]string{"flag"}))
	require.IsType(t, errors.UnsupportedColumnTypeError{}, err)
}

func TestFlattenBadCellData(t *testing.T) {
	s := createTextTestSchema("tags")
	task, _ := buildFlattenTask(t, s, Flatten([]string{"tags"}))
	part := datasource.CreateBuildablePartition(8, s)
	row, err := part.AppendEmptyRowData(datasource.CreateTempRow())
	require.Nil(t, err)
	require.Nil(t, row.SetUint64("id", 1))
	// a var cell holding non-string data fails coercion at split time
	require.Nil(t, row.SetVarCustomData("tags", []byte("oops")))
	results, err := task.RunWorker(context.Background(), part.(splay.OperablePartition))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "is not a string")
	// the offending row contributes no output rows
	numRows := 0
	for _, p := range results {
		numRows += p.GetNumRows()
	}
	require.Equal(t, 0, numRows)
}

func TestFlattenMissingColumn(t *testing.T) {
	s := createTextTestSchema("a")
	frame := datasource.CreateDataFrame(nil, nil, s)
	_, err := frame.To(Flatten([]string{"nonexistent"}))
	require.NotNil(t, err)
}

func TestFlattenMixedTargetTypes(t *testing.T) {
	s := schema.CreateSchema()
	s.CreateColumn("text", &splay.VarStringColumnType{})
	s.CreateColumn("vec", &splay.VectorColumnType{Length: 2})
	frame := datasource.CreateDataFrame(nil, nil, s)
	_, err := frame.To(Flatten([]string{"text", "vec"}))
	require.IsType(t, errors.MixedTargetTypesError{}, err)
}

func TestFlattenMultipleVectorTargets(t *testing.T) {
	s := schema.CreateSchema()
	s.CreateColumn("vec1", &splay.VectorColumnType{Length: 2})
	s.CreateColumn("vec2", &splay.VectorColumnType{Length: 2})
	frame := datasource.CreateDataFrame(nil, nil, s)
	_, err := frame.To(Flatten([]string{"vec1", "vec2"}))
	require.IsType(t, errors.MultipleVectorTargetsError{}, err)
}
