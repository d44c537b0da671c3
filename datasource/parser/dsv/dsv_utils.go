package dsv

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-splay/splay"
)

// Parses a slice of strings into a Row, according to a schema
func scanRow(conf *ParserConf, names []string, colTypes []splay.ColumnType, rowStrings []string, row splay.Row) error {
	for i := 0; i < len(rowStrings); i++ {
		colVal := rowStrings[i]
		// check for a nil value
		if len(colVal) == 0 || colVal == conf.NilValue {
			row.SetNil(names[i])
			continue
		}
		// otherwise, parse type
		switch t := colTypes[i].(type) {
		case *splay.BoolColumnType:
			bval, err := strconv.ParseBool(colVal)
			if err != nil {
				return err
			}
			row.SetBool(names[i], bval)
		case *splay.Uint32ColumnType:
			ival, err := strconv.ParseUint(colVal, 10, 32)
			if err != nil {
				return err
			}
			row.SetUint32(names[i], uint32(ival))
		case *splay.Uint64ColumnType:
			ival, err := strconv.ParseUint(colVal, 10, 64)
			if err != nil {
				return err
			}
			row.SetUint64(names[i], ival)
		case *splay.Int32ColumnType:
			ival, err := strconv.ParseInt(colVal, 10, 32)
			if err != nil {
				return err
			}
			row.SetInt32(names[i], int32(ival))
		case *splay.Int64ColumnType:
			ival, err := strconv.ParseInt(colVal, 10, 64)
			if err != nil {
				return err
			}
			row.SetInt64(names[i], ival)
		case *splay.Float32ColumnType:
			fval, err := strconv.ParseFloat(colVal, 32)
			if err != nil {
				return err
			}
			row.SetFloat32(names[i], float32(fval))
		case *splay.Float64ColumnType:
			fval, err := strconv.ParseFloat(colVal, 64)
			if err != nil {
				return err
			}
			row.SetFloat64(names[i], fval)
		case *splay.TimeColumnType:
			tval, err := time.Parse(t.Format, colVal)
			if err != nil {
				return err
			}
			row.SetTime(names[i], tval)
		case *splay.StringColumnType:
			if len(colVal) > t.Length {
				return fmt.Errorf("StringColumn %s contains more than %d characters", names[i], t.Length)
			}
			row.SetString(names[i], colVal)
		case *splay.VectorColumnType:
			elems := strings.Split(colVal, conf.VectorDelimiter)
			if len(elems) != t.Length {
				return fmt.Errorf("VectorColumn %s contains %d elements, declared length is %d", names[i], len(elems), t.Length)
			}
			vec := make([]float64, len(elems))
			for j, e := range elems {
				fval, err := strconv.ParseFloat(e, 64)
				if err != nil {
					return err
				}
				vec[j] = fval
			}
			if err := row.SetVector(names[i], vec); err != nil {
				return err
			}
		case *splay.VarStringColumnType:
			row.SetVarString(names[i], colVal)
		case *splay.VarBytesColumnType:
			row.SetVarBytes(names[i], []byte(colVal))
		default:
			return fmt.Errorf("DSV parsing does not support column type %T", colTypes[i])
		}
	}
	return nil
}
