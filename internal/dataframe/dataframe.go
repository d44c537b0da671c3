package dataframe

import (
	"github.com/go-splay/splay"
)

// A dataFrameImpl implements DataFrame internally for Splay
type dataFrameImpl struct {
	parent   *dataFrameImpl         // the parent DataFrame. Nil if this is the root.
	task     splay.Task             // the task represented by this DataFrame, executed to produce the next one
	taskType splay.TaskType         // a unique name for the type of task this DataFrame represents
	source   splay.DataSource       // the source of the data
	parser   splay.DataSourceParser // the parser for the source data
	schema   splay.Schema           // the schema of the data at this task
}

// CreateDataFrame is a factory for DataFrames. This function is not intended to be used directly,
// as DataFrames are returned by DataSource packages.
func CreateDataFrame(source splay.DataSource, parser splay.DataSourceParser, schema splay.Schema) splay.DataFrame {
	return &dataFrameImpl{
		parent:   nil,
		task:     &noOpTask{},
		taskType: splay.NoOpTaskType,
		source:   source,
		parser:   parser,
		schema:   schema,
	}
}

// GetSchema returns the Schema of a DataFrame
func (df *dataFrameImpl) GetSchema() splay.Schema {
	return df.schema
}

// GetDataSource returns the DataSource of a DataFrame
func (df *dataFrameImpl) GetDataSource() splay.DataSource {
	return df.source
}

// GetParser returns the DataSourceParser of a DataFrame
func (df *dataFrameImpl) GetParser() splay.DataSourceParser {
	return df.parser
}

// GetParent returns the DataFrame which produced this DataFrame
func (df *dataFrameImpl) GetParent() splay.DataFrame {
	if df.parent == nil {
		return nil
	}
	return df.parent
}

// GetTask returns the Task associated with this DataFrame
func (df *dataFrameImpl) GetTask() splay.Task {
	return df.task
}

// GetTaskType returns the TaskType of the Task associated with this DataFrame
func (df *dataFrameImpl) GetTaskType() splay.TaskType {
	return df.taskType
}

// To is a "functional operations" factory method for DataFrames,
// chaining operations onto the current one(s). Operations validate
// their arguments here, before any Partition is processed, so a
// malformed operation rejects the entire job up front.
func (df *dataFrameImpl) To(ops ...*splay.DataFrameOperation) (splay.DataFrame, error) {
	next := df
	// See https://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis for details of approach
	for _, op := range ops {
		result, err := op.Do(next)
		if err != nil {
			return nil, err
		}
		next = &dataFrameImpl{
			parent:   next,
			source:   df.source,
			task:     result.Task,
			taskType: op.TaskType,
			parser:   df.parser,
			schema:   result.DataSchema,
		}
	}
	return next, nil
}
