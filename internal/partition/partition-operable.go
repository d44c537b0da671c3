package partition

import (
	"github.com/go-splay/splay"
	errors "github.com/go-splay/splay/errors"
	itypes "github.com/go-splay/splay/internal/types"
	"github.com/hashicorp/go-multierror"
)

// CreateOperablePartition creates a new Partition containing an empty byte array and a schema
func CreateOperablePartition(maxRows int, schema splay.Schema) splay.OperablePartition {
	return createPartitionImpl(maxRows, schema)
}

// GetData returns the raw fixed-width data backing this Row
func (r *rowImpl) GetData() []byte {
	return r.data
}

// GetMeta returns the raw metadata backing this Row
func (r *rowImpl) GetMeta() []byte {
	return r.meta
}

// GetVarData returns the variable-length data backing this Row
func (r *rowImpl) GetVarData() map[string]interface{} {
	return r.varData
}

// GetSerializedVarData returns the serialized variable-length data backing this Row
func (r *rowImpl) GetSerializedVarData() map[string][]byte {
	return r.serializedVarData
}

// UpdateSchema swaps in a layout-compatible Schema, such as the result of a
// column rename. Fixed-width data is untouched, since offsets are unchanged,
// but variable-length data keyed under a renamed column is re-keyed.
func (p *partitionImpl) UpdateSchema(newSchema splay.Schema) error {
	if p.schema.Size() != newSchema.Size() || p.schema.NumColumns() != newSchema.NumColumns() {
		return errors.IncompatibleRowError{}
	}
	oldNames := p.schema.ColumnNames()
	newNames := newSchema.ColumnNames()
	for i, oldName := range oldNames {
		if oldName == newNames[i] {
			continue
		}
		for j := 0; j < p.numRows; j++ {
			if vals := p.varRowData[j]; vals != nil {
				if v, ok := vals[oldName]; ok {
					vals[newNames[i]] = v
					delete(vals, oldName)
				}
			}
			if ser := p.serializedVarRowData[j]; ser != nil {
				if v, ok := ser[oldName]; ok {
					ser[newNames[i]] = v
					delete(ser, oldName)
				}
			}
		}
	}
	p.schema = newSchema
	return nil
}

// MapRows runs a MapOperation on each row in this Partition, manipulating them in-place. Will fall back to creating a fresh partition if row errors occur.
func (p *partitionImpl) MapRows(fn splay.MapOperation) (splay.OperablePartition, error) {
	inPlace := true // start by attempting to manipulate rows in-place
	result := p
	var multierr *multierror.Error
	for i := 0; i < p.GetNumRows(); i++ {
		row := p.GetRow(i)
		err := fn(row)
		if err != nil {
			multierr = multierror.Append(multierr, err)
			// create a new partition and switch to non-in-place mode
			if inPlace {
				inPlace = false
				result = createPartitionImpl(p.maxRows, p.schema)
				// append all rows we've successfully processed so far (up to this one)
				for j := 0; j < i; j++ {
					err := result.AppendRowData(p.getRowData(j), p.getRowMeta(j), p.getVarRowData(j), p.getSerializedVarRowData(j))
					if err != nil {
						return nil, err
					}
				}
			}
		} else if !inPlace { // if we're not in in-place mode, append successful rows to new Partition
			result.AppendRowData(p.getRowData(i), p.getRowMeta(i), p.getVarRowData(i), p.getSerializedVarRowData(i))
		}
	}
	return result, multierr.ErrorOrNil()
}

// FlatMapRows runs a FlatMapOperation on each row in this Partition, creating
// new Partitions laid out according to outSchema. Rows produced by the
// operation's RowFactory belong to the output Schema, which permits
// operations to narrow or widen column types while flattening.
func (p *partitionImpl) FlatMapRows(fn splay.FlatMapOperation, outSchema splay.Schema) ([]splay.OperablePartition, error) {
	if outSchema == nil {
		outSchema = p.schema
	}
	var multierr *multierror.Error
	// factory for producing new rows compatible with the output Partitions
	factory := func() splay.Row {
		return &rowImpl{
			meta:              make([]byte, outSchema.NumColumns()),
			data:              make([]byte, outSchema.Size()),
			varData:           make(map[string]interface{}),
			serializedVarData: make(map[string][]byte),
			schema:            outSchema,
		}
	}
	parts := make([]splay.OperablePartition, 0, 1)
	parts = append(parts, createPartitionImpl(p.maxRows, outSchema))
	for i := 0; i < p.GetNumRows(); i++ {
		newRows, err := fn(p.GetRow(i), factory)
		if err != nil {
			multierr = multierror.Append(multierr, err)
		} else {
			for _, row := range newRows {
				appendTarget := parts[len(parts)-1]
				if appendTarget.GetNumRows() >= appendTarget.GetMaxRows() {
					parts = append(parts, createPartitionImpl(p.maxRows, outSchema))
					appendTarget = parts[len(parts)-1]
				}
				irow := row.(itypes.AccessibleRow)
				appendTarget.(splay.BuildablePartition).AppendRowData(irow.GetData(), irow.GetMeta(), irow.GetVarData(), irow.GetSerializedVarData())
			}
		}
	}
	return parts, multierr.ErrorOrNil()
}

// FilterRows filters the Rows in the current Partition, creating a new one
func (p *partitionImpl) FilterRows(fn splay.FilterOperation) (splay.OperablePartition, error) {
	var multierr *multierror.Error
	result := createPartitionImpl(p.maxRows, p.schema)
	for i := 0; i < p.GetNumRows(); i++ {
		shouldKeep, err := fn(p.GetRow(i))
		if err != nil {
			multierr = multierror.Append(multierr, err)
		}
		if shouldKeep {
			err := result.AppendRowData(p.getRowData(i), p.getRowMeta(i), p.getVarRowData(i), p.getSerializedVarRowData(i))
			// the result partition cannot fill up, since it has at most as
			// many rows as the current one
			if err != nil {
				return nil, err
			}
		}
	}
	return result, multierr.ErrorOrNil()
}

// Repack repacks a Partition according to a new Schema
func (p *partitionImpl) Repack(newSchema splay.Schema) (splay.OperablePartition, error) {
	part := createPartitionImpl(p.maxRows, newSchema)
	for i := 0; i < p.GetNumRows(); i++ {
		row := p.GetRow(i)
		newRow, err := row.Repack(newSchema)
		if err != nil {
			return nil, err
		}
		iNewRow := newRow.(itypes.AccessibleRow)
		err = part.AppendRowData(iNewRow.GetData(), iNewRow.GetMeta(), iNewRow.GetVarData(), iNewRow.GetSerializedVarData())
		if err != nil {
			return nil, err
		}
	}
	return part, nil
}
