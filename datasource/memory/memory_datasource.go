// Package memory provides a DataSource which reads data from in-memory buffers,
// one buffer per PartitionLoader. Primarily useful for testing.
package memory

import (
	"github.com/go-splay/splay"
	"github.com/go-splay/splay/datasource"
)

// DataSource is a buffer containing data which will be manipulated according to a DataFrame
type DataSource struct {
	data   [][]byte
	schema splay.Schema
}

// CreateDataFrame is a factory for DataSources
func CreateDataFrame(data [][]byte, parser splay.DataSourceParser, schema splay.Schema) splay.DataFrame {
	source := &DataSource{data, schema}
	df := datasource.CreateDataFrame(source, parser, schema)
	return df
}

// Analyze returns a PartitionMap, describing how the source data will be divided into Partitions
func (fs *DataSource) Analyze() (splay.PartitionMap, error) {
	return &PartitionMap{
		source: fs,
	}, nil
}

// GetSchema returns the Schema of this DataSource
func (fs *DataSource) GetSchema() splay.Schema {
	return fs.schema
}
