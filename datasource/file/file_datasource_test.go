package file

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-splay/splay"
	"github.com/go-splay/splay/datasource/parser/dsv"
	"github.com/go-splay/splay/operations/transform"
	"github.com/go-splay/splay/operations/util"
	"github.com/go-splay/splay/schema"
	splaytest "github.com/go-splay/splay/testing"
	"github.com/stretchr/testify/require"
)

func TestFileDatasource(t *testing.T) {
	dir, err := ioutil.TempDir("", "splay-file-test")
	require.Nil(t, err)
	defer os.RemoveAll(dir)
	require.Nil(t, ioutil.WriteFile(filepath.Join(dir, "part0.csv"), []byte("1,\"a,b\"\n2,c"), 0644))
	require.Nil(t, ioutil.WriteFile(filepath.Join(dir, "part1.csv"), []byte("3,\"d,e,f\""), 0644))

	s := schema.CreateSchema()
	s.CreateColumn("id", &splay.Uint32ColumnType{})
	s.CreateColumn("tags", &splay.VarStringColumnType{})
	parser := dsv.CreateParser(&dsv.ParserConf{PartitionSize: 4})
	frame, err := CreateDataFrame(filepath.Join(dir, "*.csv"), parser, s).To(
		transform.Flatten([]string{"tags"}),
		util.Collect(10),
	)
	require.Nil(t, err)
	res, err := splaytest.LocalRunFrame(context.Background(), frame, 2)
	require.Nil(t, err)
	numRows := 0
	require.Nil(t, res.ForEachRow(func(row splay.Row) error {
		numRows++
		return nil
	}))
	require.Equal(t, 6, numRows)
}

func TestFileDatasourceEmptyGlob(t *testing.T) {
	s := schema.CreateSchema()
	s.CreateColumn("id", &splay.Uint32ColumnType{})
	source := &DataSource{glob: "does-not-exist-*.csv", schema: s}
	_, err := source.Analyze()
	require.NotNil(t, err)
}
