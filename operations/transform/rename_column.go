package transform

import (
	"context"

	"github.com/go-splay/splay"
)

type renameColumnTask struct {
	newSchema splay.Schema
}

func (s *renameColumnTask) RunWorker(ctx context.Context, previous splay.OperablePartition) ([]splay.OperablePartition, error) {
	if err := previous.UpdateSchema(s.newSchema); err != nil {
		return nil, err
	}
	return []splay.OperablePartition{previous}, nil
}

// RenameColumn renames an existing column. The memory layout of Rows is
// unaffected, so no repacking occurs.
func RenameColumn(oldName string, newName string) *splay.DataFrameOperation {
	return &splay.DataFrameOperation{
		TaskType: splay.NoOpTaskType,
		Do: func(d splay.DataFrame) (*splay.DataFrameOperationResult, error) {
			newSchema, err := d.GetSchema().Clone().RenameColumn(oldName, newName)
			if err != nil {
				return nil, err
			}
			return &splay.DataFrameOperationResult{
				Task:       &renameColumnTask{newSchema: newSchema},
				DataSchema: newSchema,
			}, nil
		},
	}
}
