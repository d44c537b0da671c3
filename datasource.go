package splay

import "io"

// PartitionLoader is a description of how to load specific Partitions of data from a particular DataSource.
// DataSources implement this interface to implement data-loading logic. PartitionLoaders are assigned round-robin
// to workers, so an assumption is made that each PartitionLoader will produce a roughly equal number of Partitions
type PartitionLoader interface {
	ToString() string                                        // for logging
	Load(parser DataSourceParser) (PartitionIterator, error) // how to actually load data
}

// PartitionMap is an interface describing an iterator for PartitionLoaders.
// Returned by DataSource.Analyze(), the engine will iterate through
// PartitionLoaders and assign them to workers.
type PartitionMap interface {
	HasNext() bool
	Next() PartitionLoader
}

// DataSource is a source of data which will be manipulated according to transformations and actions defined in a DataFrame.
// It represents information about how to load data from the source as Partitions.
type DataSource interface {
	Analyze() (PartitionMap, error)
	GetSchema() Schema
}

// A DataSourceParser is capable of parsing raw data from a DataSource.Load to produce Partitions
type DataSourceParser interface {
	PartitionSize() int // returns the maximum size of Partitions produced by this DataSourceParser, in rows
	Parse(r io.Reader, source DataSource, schema Schema, onIteratorEnd func()) (PartitionIterator, error)
}
