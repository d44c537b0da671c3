package transform

import (
	"github.com/go-splay/splay"
)

// RemoveColumn removes existing columns. Removal changes fixed-width byte
// offsets, so Partitions are repacked to the narrowed Schema.
func RemoveColumn(oldNames ...string) *splay.DataFrameOperation {
	return &splay.DataFrameOperation{
		TaskType: splay.RepackTaskType,
		Do: func(d splay.DataFrame) (*splay.DataFrameOperationResult, error) {
			newSchema := d.GetSchema().Clone()
			for _, oldName := range oldNames {
				newSchema, _ = newSchema.RemoveColumn(oldName)
			}
			return &splay.DataFrameOperationResult{
				Task:       &repackTask{newSchema: newSchema},
				DataSchema: newSchema,
			}, nil
		},
	}
}
