package jsonl

import (
	"fmt"
	"time"

	"github.com/go-splay/splay"
	"github.com/tidwall/gjson"
)

// parseJSONRow extracts the values for each Schema column from a line of JSON, storing them in a Row
func parseJSONRow(names []string, colTypes []splay.ColumnType, line gjson.Result, row splay.Row) error {
	for i, name := range names {
		val := line.Get(name)
		if !val.Exists() || val.Type == gjson.Null {
			row.SetNil(name)
			continue
		}
		switch t := colTypes[i].(type) {
		case *splay.BoolColumnType:
			row.SetBool(name, val.Bool())
		case *splay.Uint32ColumnType:
			row.SetUint32(name, uint32(val.Uint()))
		case *splay.Uint64ColumnType:
			row.SetUint64(name, val.Uint())
		case *splay.Int32ColumnType:
			row.SetInt32(name, int32(val.Int()))
		case *splay.Int64ColumnType:
			row.SetInt64(name, val.Int())
		case *splay.Float32ColumnType:
			row.SetFloat32(name, float32(val.Float()))
		case *splay.Float64ColumnType:
			row.SetFloat64(name, val.Float())
		case *splay.TimeColumnType:
			tval, err := time.Parse(t.Format, val.String())
			if err != nil {
				return err
			}
			row.SetTime(name, tval)
		case *splay.StringColumnType:
			sval := val.String()
			if len(sval) > t.Length {
				return fmt.Errorf("StringColumn %s contains more than %d characters", name, t.Length)
			}
			row.SetString(name, sval)
		case *splay.VectorColumnType:
			elems := val.Array()
			if len(elems) != t.Length {
				return fmt.Errorf("VectorColumn %s contains %d elements, declared length is %d", name, len(elems), t.Length)
			}
			vec := make([]float64, len(elems))
			for j, e := range elems {
				vec[j] = e.Float()
			}
			if err := row.SetVector(name, vec); err != nil {
				return err
			}
		case *splay.VarStringColumnType:
			row.SetVarString(name, val.String())
		case *splay.VarBytesColumnType:
			row.SetVarBytes(name, []byte(val.String()))
		default:
			return fmt.Errorf("JSONL parsing does not support column type %T", colTypes[i])
		}
	}
	return nil
}
