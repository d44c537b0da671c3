package dsv

import (
	"testing"
	"time"

	"github.com/go-splay/splay"
	memory "github.com/go-splay/splay/datasource/memory"
	"github.com/go-splay/splay/schema"
	"github.com/stretchr/testify/require"
)

func TestDSVDatasourceParser(t *testing.T) {
	// Create a dataframe for the data, load it, and test things
	s := schema.CreateSchema()
	s.CreateColumn("name", &splay.VarStringColumnType{})
	s.CreateColumn("index", &splay.Int32ColumnType{})
	s.CreateColumn("time", &splay.TimeColumnType{Format: "2006-01-02"})

	parser := CreateParser(&ParserConf{
		PartitionSize: 128,
	})
	data := [][]byte{
		[]byte("Sean,1,2019-01-01\nChris,3,2019-01-02"),
		[]byte("Phil,2,2019-01-03\nFahd,4,2019-01-04"),
	}
	frame := memory.CreateDataFrame(data, parser, s)

	pm, err := frame.GetDataSource().Analyze()
	require.Nil(t, err, "Analyze err should be null")
	totalRows := 0
	for pm.HasNext() {
		pl := pm.Next()
		pi, err := pl.Load(parser)
		require.Nil(t, err)
		for pi.HasNextPartition() {
			part, _, err := pi.NextPartition()
			require.Nil(t, err)
			totalRows += part.GetNumRows()
		}
	}
	require.False(t, pm.HasNext())
	require.Equal(t, 4, totalRows)
}

func TestDSVParserValues(t *testing.T) {
	s := schema.CreateSchema()
	s.CreateColumn("name", &splay.VarStringColumnType{})
	s.CreateColumn("vec", &splay.VectorColumnType{Length: 3})
	s.CreateColumn("when", &splay.TimeColumnType{Format: "2006-01-02"})

	parser := CreateParser(&ParserConf{PartitionSize: 8})
	data := [][]byte{
		[]byte("row1,1.5;2.5;3.5,2019-01-01"),
	}
	frame := memory.CreateDataFrame(data, parser, s)
	pm, err := frame.GetDataSource().Analyze()
	require.Nil(t, err)
	pi, err := pm.Next().Load(parser)
	require.Nil(t, err)
	part, _, err := pi.NextPartition()
	require.Nil(t, err)
	require.Equal(t, 1, part.GetNumRows())
	row := part.GetRow(0)
	name, err := row.GetVarString("name")
	require.Nil(t, err)
	require.Equal(t, "row1", name)
	vec, err := row.GetVector("vec")
	require.Nil(t, err)
	require.Equal(t, []float64{1.5, 2.5, 3.5}, vec)
	when, err := row.GetTime("when")
	require.Nil(t, err)
	expected, _ := time.Parse("2006-01-02", "2019-01-01")
	require.Equal(t, expected.UnixNano(), when.UnixNano())
}

func TestDSVParserNilValues(t *testing.T) {
	s := schema.CreateSchema()
	s.CreateColumn("name", &splay.VarStringColumnType{})
	s.CreateColumn("index", &splay.Int32ColumnType{})

	parser := CreateParser(&ParserConf{PartitionSize: 8, NilValue: "NULL"})
	data := [][]byte{
		[]byte("row1,NULL"),
	}
	frame := memory.CreateDataFrame(data, parser, s)
	pm, err := frame.GetDataSource().Analyze()
	require.Nil(t, err)
	pi, err := pm.Next().Load(parser)
	require.Nil(t, err)
	part, _, err := pi.NextPartition()
	require.Nil(t, err)
	require.True(t, part.GetRow(0).IsNil("index"))
	require.False(t, part.GetRow(0).IsNil("name"))
}
