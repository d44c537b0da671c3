package transform

import (
	"context"

	"github.com/go-splay/splay"
	iutil "github.com/go-splay/splay/internal/util"
)

type flatMapTask struct {
	fn splay.FlatMapOperation
}

func (s *flatMapTask) RunWorker(ctx context.Context, previous splay.OperablePartition) ([]splay.OperablePartition, error) {
	results, err := previous.FlatMapRows(s.fn, nil)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// FlatMap transforms a Row, potentially producing new rows
func FlatMap(fn splay.FlatMapOperation) *splay.DataFrameOperation {
	return &splay.DataFrameOperation{
		TaskType: splay.FlatMapTaskType,
		Do: func(d splay.DataFrame) (*splay.DataFrameOperationResult, error) {
			return &splay.DataFrameOperationResult{
				Task:       &flatMapTask{fn: iutil.SafeFlatMapOperation(fn)},
				DataSchema: d.GetSchema().Clone(),
			}, nil
		},
	}
}
