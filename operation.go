package splay

// RowFactory is a function that produces a fresh Row. Used specifically within a FlatMapOperation, a RowFactory gives the client a mechanism to return more Rows than were originally within a Partition.
type RowFactory func() Row

// AccumulatorFactory is a function that produces a fresh Accumulator
type AccumulatorFactory func() Accumulator

// MapOperation - A generic function for manipulating Rows in-place
type MapOperation func(row Row) error

// FilterOperation - A generic function for determining whether or not a Row should be retained
type FilterOperation func(row Row) (bool, error)

// FlatMapOperation - A generic function for turning a Row into zero or more Rows. newRow() is used to produce fresh output rows.
type FlatMapOperation func(row Row, newRow RowFactory) ([]Row, error)

// DataFrameOperation - A generic DataFrame transform, returning a TaskType and a
// factory which produces a Task performing the "work", along with the
// (potentially) altered Schema of the transformed data. Argument validation
// belongs in Do, so that malformed operations reject the entire job before
// any Partition is processed.
type DataFrameOperation struct {
	TaskType TaskType
	Do       func(d DataFrame) (*DataFrameOperationResult, error)
}

// DataFrameOperationResult is the result of a DataFrameOperation
type DataFrameOperationResult struct {
	Task       Task   // the task to run
	DataSchema Schema // the Schema of the data after the Task has run
}
