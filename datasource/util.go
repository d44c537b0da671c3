// Package datasource provides utilities for implementing DataSources and their Parsers
package datasource

import (
	"github.com/go-splay/splay"
	idataframe "github.com/go-splay/splay/internal/dataframe"
	ipartition "github.com/go-splay/splay/internal/partition"
)

// CreateDataFrame produces a fresh DataFrame (useful for the implementation of DataSources)
func CreateDataFrame(source splay.DataSource, parser splay.DataSourceParser, schema splay.Schema) splay.DataFrame {
	return idataframe.CreateDataFrame(source, parser, schema)
}

// CreateBuildablePartition produces an empty Partition which Parsers can populate with Rows
func CreateBuildablePartition(maxRows int, schema splay.Schema) splay.BuildablePartition {
	return ipartition.CreateBuildablePartition(maxRows, schema)
}

// CreateTempRow produces an empty Row struct for reuse with BuildablePartition.AppendEmptyRowData
func CreateTempRow() splay.Row {
	return ipartition.CreateTempRow()
}
