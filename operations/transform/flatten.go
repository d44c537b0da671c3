package transform

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-splay/splay"
	"github.com/go-splay/splay/errors"
	iutil "github.com/go-splay/splay/internal/util"
)

// targetColumnSpec is the resolved per-invocation description of one column
// targeted by a Flatten. It is read-only once built, so the per-row functions
// closed over it are safe to share across workers.
type targetColumnSpec struct {
	name      string
	colType   splay.ColumnType
	delimiter string
}

type flattenTask struct {
	fn        splay.FlatMapOperation
	outSchema splay.Schema
}

func (s *flattenTask) RunWorker(ctx context.Context, previous splay.OperablePartition) ([]splay.OperablePartition, error) {
	results, err := previous.FlatMapRows(s.fn, s.outSchema)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Flatten expands rows whose target columns hold delimited text or
// fixed-length vectors, producing one row per value so that every target
// column holds exactly one scalar in every output row. Text columns
// (StringColumnType or VarStringColumnType) are split on a literal delimiter.
// A VectorColumnType column produces one row per element, and its column is
// narrowed to a Float64Column in the output Schema.
//
// Delimiters are optional. Zero delimiters splits every text column on a
// comma, one delimiter is broadcast to all target columns, and a list as long
// as colNames applies position-for-position. Any other count is rejected, as
// is a mix of text and vector targets or more than one vector target, all
// before any Partition is processed.
//
// When several text columns are targeted, they are split simultaneously and
// their values aligned positionally, in the order colNames lists them. A
// column which does not split contributes its value to the first output row
// only, and is blanked in rows created for a later-listed column's extra
// values.
func Flatten(colNames []string, delimiters ...string) *splay.DataFrameOperation {
	return &splay.DataFrameOperation{
		TaskType: splay.FlatMapTaskType,
		Do: func(d splay.DataFrame) (*splay.DataFrameOperationResult, error) {
			if len(colNames) == 0 {
				return nil, fmt.Errorf("Flatten requires at least one target column")
			}
			delims, err := resolveDelimiters(colNames, delimiters)
			if err != nil {
				return nil, err
			}
			schema := d.GetSchema()
			specs := make([]targetColumnSpec, len(colNames))
			numText := 0
			numVector := 0
			vectorName := ""
			for i, name := range colNames {
				offset, err := schema.GetOffset(name)
				if err != nil {
					return nil, err
				}
				switch offset.Type().(type) {
				case *splay.StringColumnType, *splay.VarStringColumnType:
					numText++
				case *splay.VectorColumnType:
					numVector++
					vectorName = name
				default:
					return nil, errors.UnsupportedColumnTypeError{Name: name, Type: offset.Type()}
				}
				specs[i] = targetColumnSpec{name: name, colType: offset.Type(), delimiter: delims[i]}
			}
			if numText > 0 && numVector > 0 {
				return nil, errors.MixedTargetTypesError{}
			}
			if numVector > 1 {
				return nil, errors.MultipleVectorTargetsError{}
			}
			var fn splay.FlatMapOperation
			outSchema := schema.Clone()
			if numVector == 1 {
				outSchema, err = outSchema.ConvertColumnType(vectorName, &splay.Float64ColumnType{})
				if err != nil {
					return nil, err
				}
				fn = vectorSplitter(vectorName, outSchema)
			} else if len(specs) == 1 {
				fn = textSplitter(specs[0], outSchema)
			} else {
				fn = textAligner(specs, outSchema)
			}
			return &splay.DataFrameOperationResult{
				Task:       &flattenTask{fn: iutil.SafeFlatMapOperation(fn), outSchema: outSchema},
				DataSchema: outSchema,
			}, nil
		},
	}
}

// resolveDelimiters normalizes the supplied delimiter list against the target
// column list. Zero delimiters defaults every column to a comma, one delimiter
// is broadcast, and a full-length list is used position-for-position.
func resolveDelimiters(colNames []string, delimiters []string) ([]string, error) {
	resolved := make([]string, len(colNames))
	switch {
	case len(delimiters) == 0:
		for i := range resolved {
			resolved[i] = ","
		}
	case len(delimiters) == len(colNames):
		copy(resolved, delimiters)
	case len(delimiters) == 1:
		for i := range resolved {
			resolved[i] = delimiters[0]
		}
	default:
		return nil, errors.DelimiterCountError{NumDelimiters: len(delimiters), NumColumns: len(colNames)}
	}
	return resolved, nil
}

// readTextCell fetches a target text cell's value. Fixed-length strings are
// stored zero-padded, so the padding is stripped before splitting.
func readTextCell(row splay.Row, spec targetColumnSpec) (string, error) {
	switch spec.colType.(type) {
	case *splay.StringColumnType:
		val, err := row.GetString(spec.name)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(val, "\x00"), nil
	case *splay.VarStringColumnType:
		return row.GetVarString(spec.name)
	}
	return "", errors.UnsupportedColumnTypeError{Name: spec.name, Type: spec.colType}
}

// writeTextCell overwrites a target text cell. Fixed-length cells are
// zero-filled to their full width first, so that a short token never leaves
// stale bytes from the pre-split value behind it.
func writeTextCell(row splay.Row, spec targetColumnSpec, value string) error {
	switch t := spec.colType.(type) {
	case *splay.StringColumnType:
		padded := make([]byte, t.Length)
		copy(padded, value)
		return row.SetString(spec.name, string(padded))
	case *splay.VarStringColumnType:
		return row.SetVarString(spec.name, value)
	}
	return errors.UnsupportedColumnTypeError{Name: spec.name, Type: spec.colType}
}

// vectorSplitter produces one row per vector element, with the target cell
// narrowed to a single float64 under outSchema.
func vectorSplitter(colName string, outSchema splay.Schema) splay.FlatMapOperation {
	return func(row splay.Row, newRow splay.RowFactory) ([]splay.Row, error) {
		vec, err := row.GetVector(colName)
		if err != nil {
			return nil, err
		}
		result := make([]splay.Row, len(vec))
		for i, v := range vec {
			clone, err := row.Repack(outSchema)
			if err != nil {
				return nil, err
			}
			if err = clone.SetFloat64(colName, v); err != nil {
				return nil, err
			}
			result[i] = clone
		}
		return result, nil
	}
}

// textSplitter splits a single text column on its literal delimiter,
// producing one row per token. A value the delimiter does not occur in
// passes the row through untouched.
func textSplitter(spec targetColumnSpec, outSchema splay.Schema) splay.FlatMapOperation {
	return func(row splay.Row, newRow splay.RowFactory) ([]splay.Row, error) {
		val, err := readTextCell(row, spec)
		if err != nil {
			return nil, err
		}
		tokens := strings.Split(val, spec.delimiter)
		if len(tokens) <= 1 {
			return []splay.Row{row}, nil
		}
		result := make([]splay.Row, len(tokens))
		for i, token := range tokens {
			clone, err := row.Repack(outSchema)
			if err != nil {
				return nil, err
			}
			if err = writeTextCell(clone, spec, token); err != nil {
				return nil, err
			}
			result[i] = clone
		}
		return result, nil
	}
}

// textAligner splits several text columns at once, aligning their tokens
// positionally in an output buffer which grows as columns are processed.
// Columns are processed in the order they were requested, and each column
// always splits the original input row's value, never a partial result.
// Rows created for a later column's extra tokens blank the other target
// columns, so pre-split values cannot leak into them. The processing order
// is observable: a non-splitting column processed before a splitting one
// keeps its value in every row that existed at the time, but only in row 0
// otherwise.
func textAligner(specs []targetColumnSpec, outSchema splay.Schema) splay.FlatMapOperation {
	return func(row splay.Row, newRow splay.RowFactory) ([]splay.Row, error) {
		var buffer []splay.Row
		for i, spec := range specs {
			val, err := readTextCell(row, spec)
			if err != nil {
				return nil, err
			}
			tokens := strings.Split(val, spec.delimiter)
			if len(tokens) > 1 {
				for p, token := range tokens {
					if p >= len(buffer) {
						// no row at this position yet: clone the input,
						// blanking the other target columns
						clone, err := row.Repack(outSchema)
						if err != nil {
							return nil, err
						}
						for j, other := range specs {
							if j == i {
								continue
							}
							if err = writeTextCell(clone, other, ""); err != nil {
								return nil, err
							}
						}
						if err = writeTextCell(clone, spec, token); err != nil {
							return nil, err
						}
						buffer = append(buffer, clone)
					} else {
						// the buffered row is owned by this loop, so it can
						// be overwritten in place
						if err = writeTextCell(buffer[p], spec, token); err != nil {
							return nil, err
						}
					}
				}
			} else if len(buffer) == 0 {
				// nothing has split yet: a clone of the input seeds position 0
				clone, err := row.Repack(outSchema)
				if err != nil {
					return nil, err
				}
				buffer = append(buffer, clone)
			} else {
				// a column which did not split writes its value into row 0 only
				if err = writeTextCell(buffer[0], spec, tokens[0]); err != nil {
					return nil, err
				}
			}
		}
		return buffer, nil
	}
}
