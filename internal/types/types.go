package types

import (
	"github.com/go-splay/splay"
)

// AccessibleRow allows access to the raw buffers backing a Row
type AccessibleRow interface {
	splay.Row
	GetData() []byte
	GetMeta() []byte
	GetVarData() map[string]interface{}
	GetSerializedVarData() map[string][]byte
}

// An ExecutableDataFrame adds methods specific to the execution of DataFrames
type ExecutableDataFrame interface {
	splay.DataFrame
	GetParent() splay.DataFrame  // GetParent returns the DataFrame which produced this DataFrame
	GetTask() splay.Task         // GetTask returns the Task associated with this DataFrame, if any
	GetTaskType() splay.TaskType // GetTaskType returns the TaskType of the Task associated with this DataFrame
}

// A CollectionTask is a Task which marks the end of a job, returning results to the caller
type CollectionTask interface {
	splay.Task
	GetCollectionLimit() int // GetCollectionLimit returns the maximum number of Partitions to collect
}

// An AccumulatorTask is a Task which accumulates row data into a custom structure
type AccumulatorTask interface {
	splay.Task
	GetAccumulatorFactory() splay.AccumulatorFactory // GetAccumulatorFactory produces a fresh Accumulator for a worker
}
