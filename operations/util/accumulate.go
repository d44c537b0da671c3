package util

import (
	"context"

	"github.com/go-splay/splay"
)

type accumulateTask struct {
	facc splay.AccumulatorFactory
}

func (s *accumulateTask) RunWorker(ctx context.Context, previous splay.OperablePartition) ([]splay.OperablePartition, error) {
	return []splay.OperablePartition{previous}, nil
}

func (s *accumulateTask) GetAccumulatorFactory() splay.AccumulatorFactory {
	return s.facc
}

// Accumulate combines rows across workers, using a user-provided data structure
func Accumulate(facc splay.AccumulatorFactory) *splay.DataFrameOperation {
	return &splay.DataFrameOperation{
		TaskType: splay.AccumulateTaskType,
		Do: func(d splay.DataFrame) (*splay.DataFrameOperationResult, error) {
			return &splay.DataFrameOperationResult{
				Task:       &accumulateTask{facc: facc},
				DataSchema: d.GetSchema().Clone(),
			}, nil
		},
	}
}
