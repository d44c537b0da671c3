package transform

import (
	"context"

	"github.com/go-splay/splay"
	iutil "github.com/go-splay/splay/internal/util"
)

type mapTask struct {
	fn splay.MapOperation
}

func (s *mapTask) RunWorker(ctx context.Context, previous splay.OperablePartition) ([]splay.OperablePartition, error) {
	next, err := previous.MapRows(s.fn)
	if err != nil {
		return nil, err
	}
	return []splay.OperablePartition{next}, nil
}

// Map transforms a Row in-place
func Map(fn splay.MapOperation) *splay.DataFrameOperation {
	return &splay.DataFrameOperation{
		TaskType: splay.MapTaskType,
		Do: func(d splay.DataFrame) (*splay.DataFrameOperationResult, error) {
			return &splay.DataFrameOperationResult{
				Task:       &mapTask{fn: iutil.SafeMapOperation(fn)},
				DataSchema: d.GetSchema().Clone(),
			}, nil
		},
	}
}
