package partition

import (
	"github.com/go-splay/splay"
	errors "github.com/go-splay/splay/errors"
)

// CreateBuildablePartition creates a new Partition containing an empty byte array and a schema
func CreateBuildablePartition(maxRows int, schema splay.Schema) splay.BuildablePartition {
	return createPartitionImpl(maxRows, schema)
}

// CanInsertRowData checks if a Row can be inserted into this Partition
func (p *partitionImpl) CanInsertRowData(row []byte) error {
	if len(row) > p.schema.Size() {
		return errors.IncompatibleRowError{}
	} else if p.numRows >= p.maxRows {
		return errors.PartitionFullError{}
	} else {
		return nil
	}
}

// ForEachRow iterates over Rows in a Partition
func (p *partitionImpl) ForEachRow(fn splay.MapOperation) error {
	row := &rowImpl{}
	for i := 0; i < p.GetNumRows(); i++ {
		err := fn(p.getRow(row, i))
		if err != nil {
			return err
		}
	}
	return nil
}

// AppendEmptyRowData is a convenient way to add an empty Row to the end of this Partition, returning the Row so that Row methods can be used to populate it
func (p *partitionImpl) AppendEmptyRowData(tempRow splay.Row) (splay.Row, error) {
	if p.numRows >= p.maxRows {
		return nil, errors.PartitionFullError{}
	}
	p.numRows++
	return p.getRow(tempRow.(*rowImpl), p.numRows-1), nil
}

// AppendRowData adds a Row to the end of this Partition, if it isn't full and if the Row fits within the schema
func (p *partitionImpl) AppendRowData(row []byte, meta []byte, varData map[string]interface{}, serializedVarRowData map[string][]byte) error {
	if err := p.CanInsertRowData(row); err != nil {
		return err
	}
	copy(p.rows[p.numRows*p.schema.Size():(p.numRows+1)*p.schema.Size()], row)
	copy(p.rowMeta[p.numRows*p.schema.NumColumns():(p.numRows+1)*p.schema.NumColumns()], meta)
	p.varRowData[p.numRows] = varData
	p.serializedVarRowData[p.numRows] = serializedVarRowData
	p.numRows++
	return nil
}
