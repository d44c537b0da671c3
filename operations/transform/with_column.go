package transform

import (
	"github.com/go-splay/splay"
)

// AddColumn declares that a new (empty) column with a specific type and name
// should be available to the next Task of the DataFrame pipeline. Since
// adding a column changes fixed-width byte offsets, Partitions are repacked
// to the widened Schema.
func AddColumn(colName string, colType splay.ColumnType) *splay.DataFrameOperation {
	return &splay.DataFrameOperation{
		TaskType: splay.RepackTaskType,
		Do: func(d splay.DataFrame) (*splay.DataFrameOperationResult, error) {
			newSchema, err := d.GetSchema().Clone().CreateColumn(colName, colType)
			if err != nil {
				return nil, err
			}
			return &splay.DataFrameOperationResult{
				Task:       &repackTask{newSchema: newSchema},
				DataSchema: newSchema,
			}, nil
		},
	}
}
