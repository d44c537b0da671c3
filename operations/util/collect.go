package util

import (
	"context"

	"github.com/go-splay/splay"
)

type collectTask struct {
	collectionLimit int
}

func (s *collectTask) RunWorker(ctx context.Context, previous splay.OperablePartition) ([]splay.OperablePartition, error) {
	// do nothing
	return []splay.OperablePartition{previous}, nil
}

func (s *collectTask) GetCollectionLimit() int {
	return s.collectionLimit
}

// Collect declares that the resulting Partitions of a job should be retained
// for inspection, up to a maximum number of Partitions. This also signals the
// end of a DataFrame's tasks.
func Collect(collectionLimit int) *splay.DataFrameOperation {
	return &splay.DataFrameOperation{
		TaskType: splay.CollectTaskType,
		Do: func(d splay.DataFrame) (*splay.DataFrameOperationResult, error) {
			return &splay.DataFrameOperationResult{
				Task:       &collectTask{collectionLimit},
				DataSchema: d.GetSchema().Clone(),
			}, nil
		},
	}
}
