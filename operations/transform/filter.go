package transform

import (
	"context"

	"github.com/go-splay/splay"
	iutil "github.com/go-splay/splay/internal/util"
)

type filterTask struct {
	fn splay.FilterOperation
}

func (s *filterTask) RunWorker(ctx context.Context, previous splay.OperablePartition) ([]splay.OperablePartition, error) {
	result, err := previous.FilterRows(s.fn)
	if err != nil {
		return nil, err
	}
	return []splay.OperablePartition{result}, nil
}

// Filter filters Rows out of a Partition, creating a new one
func Filter(fn splay.FilterOperation) *splay.DataFrameOperation {
	return &splay.DataFrameOperation{
		TaskType: splay.FilterTaskType,
		Do: func(d splay.DataFrame) (*splay.DataFrameOperationResult, error) {
			return &splay.DataFrameOperationResult{
				Task:       &filterTask{fn: iutil.SafeFilterOperation(fn)},
				DataSchema: d.GetSchema().Clone(),
			}, nil
		},
	}
}
