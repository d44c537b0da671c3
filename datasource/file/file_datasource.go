package file

import (
	"fmt"
	"path/filepath"

	"github.com/go-splay/splay"
	"github.com/go-splay/splay/datasource"
)

// DataSource is a set of files containing data which will be manipulated according to a DataFrame
type DataSource struct {
	glob   string
	schema splay.Schema
}

// CreateDataFrame is a factory for DataSources
func CreateDataFrame(glob string, parser splay.DataSourceParser, schema splay.Schema) splay.DataFrame {
	source := &DataSource{glob, schema}
	df := datasource.CreateDataFrame(source, parser, schema)
	return df
}

// Analyze returns a PartitionMap, describing how the source files will be divided into Partitions
func (fs *DataSource) Analyze() (splay.PartitionMap, error) {
	matches, err := filepath.Glob(fs.glob)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("glob %s produced 0 files", fs.glob)
	}
	return &PartitionMap{
		files:  matches,
		source: fs,
	}, nil
}

// GetSchema returns the Schema of this DataSource
func (fs *DataSource) GetSchema() splay.Schema {
	return fs.schema
}
