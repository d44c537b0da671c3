package transform

import (
	"context"

	"github.com/go-splay/splay"
)

type repackTask struct {
	newSchema splay.Schema
}

func (s *repackTask) RunWorker(ctx context.Context, previous splay.OperablePartition) ([]splay.OperablePartition, error) {
	part, err := previous.Repack(s.newSchema)
	if err != nil {
		return nil, err
	}
	return []splay.OperablePartition{part}, nil
}

// Repack rearranges the memory layout of Rows to respect a new Schema
func Repack() *splay.DataFrameOperation {
	return &splay.DataFrameOperation{
		TaskType: splay.RepackTaskType,
		Do: func(d splay.DataFrame) (*splay.DataFrameOperationResult, error) {
			newSchema := d.GetSchema().Clone()
			return &splay.DataFrameOperationResult{
				Task:       &repackTask{newSchema: newSchema},
				DataSchema: newSchema,
			}, nil
		},
	}
}
