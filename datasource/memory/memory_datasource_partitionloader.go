package memory

import (
	"bytes"
	"fmt"

	"github.com/go-splay/splay"
)

// PartitionLoader is capable of loading partitions of data from an in-memory buffer
type PartitionLoader struct {
	idx    int
	source *DataSource
}

// ToString returns a string representation of this PartitionLoader
func (pl *PartitionLoader) ToString() string {
	return fmt.Sprintf("Memory loader index: %d", pl.idx)
}

// Load parses an in-memory buffer to produce Partitions
func (pl *PartitionLoader) Load(parser splay.DataSourceParser) (splay.PartitionIterator, error) {
	r := bytes.NewReader(pl.source.data[pl.idx])
	pi, err := parser.Parse(r, pl.source, pl.source.schema, nil)
	if err != nil {
		return nil, err
	}
	return pi, nil
}
