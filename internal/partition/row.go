package partition

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-splay/splay"
	errors "github.com/go-splay/splay/errors"
)

const (
	colValueIsNilFlag = 1 << iota
)

// rowImpl is a representation of a single row of columnar data,
// (a slice of a Partition), along with a reference to the
// Schema for that row (a mapping of column names to byte
// offsets). In practice, users of Row will call its
// getter and setter methods to retrieve, manipulate and store data
type rowImpl struct {
	partID            string
	meta              []byte
	data              []byte                 // likely a slice of a partition array
	varData           map[string]interface{} // variable-length data
	serializedVarData map[string][]byte      // variable-length data
	schema            splay.Schema           // schema lets us pick the values we need out of the row
}

// CreateRow builds a new row from individual internal components
func CreateRow(partID string, meta []byte, data []byte, varData map[string]interface{}, serializedVarData map[string][]byte, schema splay.Schema) splay.Row {
	return &rowImpl{partID: partID, meta: meta, data: data, varData: varData, serializedVarData: serializedVarData, schema: schema}
}

// CreateTempRow builds an empty row struct which cannot be used until passed to a function which populates it with data
func CreateTempRow() splay.Row {
	return &rowImpl{}
}

// Schema returns a read-only copy of the schema for a row
func (r *rowImpl) Schema() splay.Schema {
	return r.schema.Clone()
}

// ToString returns a string representation of this row
func (r *rowImpl) ToString() string {
	var res strings.Builder
	fmt.Fprint(&res, "{")
	r.schema.ForEachColumn(func(name string, col splay.Column) error {
		var val string
		if r.IsNil(name) {
			val = "nil"
		} else {
			v, err := r.Get(name)
			if err != nil {
				return err
			}
			val = col.Type().ToString(v)
		}
		fmt.Fprintf(&res, "\"%s\": %s,", name, val)
		return nil
	})
	fmt.Fprint(&res, "}")
	return res.String()
}

// IsNil returns true iff the given column value is nil in this row. If an error occurs, this function will return false.
func (r *rowImpl) IsNil(colName string) bool {
	offset, e := r.schema.GetOffset(colName)
	if e != nil {
		return false
	}
	if !splay.IsVariableLength(offset.Type()) {
		return r.meta[offset.Index()]&colValueIsNilFlag > 0
	}
	_, ok := r.varData[colName]
	return !ok
}

// SetNil sets the given column value to nil within this row
func (r *rowImpl) SetNil(colName string) error {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return err
	}
	if !splay.IsVariableLength(offset.Type()) {
		r.meta[offset.Index()] = r.meta[offset.Index()] | colValueIsNilFlag
	} else {
		delete(r.varData, colName)
		delete(r.serializedVarData, colName)
	}
	return nil
}

// checkIsNil verifies that the value for a column is not nil
func (r *rowImpl) checkIsNil(colName string, offset splay.Column) error {
	if !splay.IsVariableLength(offset.Type()) && r.meta[offset.Index()]&colValueIsNilFlag > 0 {
		return errors.NilValueError{Name: colName}
	} else if splay.IsVariableLength(offset.Type()) {
		if _, ok := r.varData[colName]; !ok {
			if _, ok := r.serializedVarData[colName]; !ok {
				return errors.NilValueError{Name: colName}
			}
		}
	}
	return nil
}

// setNotNil clears the nil flag for a column
func (r *rowImpl) setNotNil(offset splay.Column) {
	if !splay.IsVariableLength(offset.Type()) {
		r.meta[offset.Index()] = r.meta[offset.Index()] &^ colValueIsNilFlag
	}
}

// Get returns the value of any column as an interface{}, if it exists
func (r *rowImpl) Get(colName string) (col interface{}, err error) {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return nil, err
	} else if splay.IsVariableLength(offset.Type()) {
		switch offset.Type().(type) {
		case *splay.VarStringColumnType:
			return r.GetVarString(colName)
		case *splay.VarBytesColumnType:
			return r.GetVarBytes(colName)
		default:
			return r.GetVarCustomData(colName)
		}
	} else {
		switch offset.Type().(type) {
		case *splay.BoolColumnType:
			return r.GetBool(colName)
		case *splay.Uint32ColumnType:
			return r.GetUint32(colName)
		case *splay.Uint64ColumnType:
			return r.GetUint64(colName)
		case *splay.Int32ColumnType:
			return r.GetInt32(colName)
		case *splay.Int64ColumnType:
			return r.GetInt64(colName)
		case *splay.Float32ColumnType:
			return r.GetFloat32(colName)
		case *splay.Float64ColumnType:
			return r.GetFloat64(colName)
		case *splay.TimeColumnType:
			return r.GetTime(colName)
		case *splay.StringColumnType:
			return r.GetString(colName)
		case *splay.VectorColumnType:
			return r.GetVector(colName)
		default:
			return nil, fmt.Errorf("Cannot fetch value for unknown column type")
		}
	}
}

// getBytes retrieves the raw fixed-width bytes for a column
func (r *rowImpl) getBytes(colName string) (col []byte, err error) {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return
	}
	err = r.checkIsNil(colName, offset)
	if err != nil {
		return
	}
	col = r.data[offset.Start() : offset.Start()+offset.Type().Size()]
	return
}

// GetBool retrieves a single bool from the column with the given name.
func (r *rowImpl) GetBool(colName string) (col bool, err error) {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return
	}
	err = r.checkIsNil(colName, offset)
	if err != nil {
		return
	}
	col = r.data[offset.Start()] > 0
	return
}

// GetUint32 retrieves a single uint32 from the column with the given name
func (r *rowImpl) GetUint32(colName string) (col uint32, err error) {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return
	}
	err = r.checkIsNil(colName, offset)
	if err != nil {
		return
	}
	col = binary.LittleEndian.Uint32(r.data[offset.Start():])
	return
}

// GetUint64 retrieves a single uint64 from the column with the given name
func (r *rowImpl) GetUint64(colName string) (col uint64, err error) {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return
	}
	err = r.checkIsNil(colName, offset)
	if err != nil {
		return
	}
	col = binary.LittleEndian.Uint64(r.data[offset.Start():])
	return
}

// GetInt32 retrieves a single int32 from the column with the given name
func (r *rowImpl) GetInt32(colName string) (col int32, err error) {
	result, err := r.GetUint32(colName)
	if err != nil {
		return
	}
	col = int32(result)
	return
}

// GetInt64 retrieves a single int64 from the column with the given name
func (r *rowImpl) GetInt64(colName string) (col int64, err error) {
	result, err := r.GetUint64(colName)
	if err != nil {
		return
	}
	col = int64(result)
	return
}

// GetFloat32 retrieves a single float32 from the column with the given name
func (r *rowImpl) GetFloat32(colName string) (col float32, err error) {
	bits, err := r.GetUint32(colName)
	if err != nil {
		return
	}
	col = math.Float32frombits(bits)
	return
}

// GetFloat64 retrieves a single float64 from the column with the given name
func (r *rowImpl) GetFloat64(colName string) (col float64, err error) {
	bits, err := r.GetUint64(colName)
	if err != nil {
		return
	}
	col = math.Float64frombits(bits)
	return
}

// GetTime retrieves a single Time from the column with the given name
func (r *rowImpl) GetTime(colName string) (col time.Time, err error) {
	bits, err := r.getBytes(colName)
	if err != nil {
		return
	}
	col = time.Now()
	err = col.UnmarshalBinary(bits)
	if err != nil {
		return
	}
	return
}

// GetString returns a single, fixed-length string value from the column with the given name
func (r *rowImpl) GetString(colName string) (string, error) {
	bits, err := r.getBytes(colName)
	if err != nil {
		return "", err
	}
	return string(bits), nil
}

// GetVector retrieves a fixed-length float64 vector from the column with the given name
func (r *rowImpl) GetVector(colName string) (col []float64, err error) {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return
	}
	vtype, ok := offset.Type().(*splay.VectorColumnType)
	if !ok {
		return nil, errors.TypeCoercionError{Name: colName, Expected: "vector"}
	}
	err = r.checkIsNil(colName, offset)
	if err != nil {
		return
	}
	col = make([]float64, vtype.Length)
	for i := 0; i < vtype.Length; i++ {
		bits := binary.LittleEndian.Uint64(r.data[offset.Start()+i*8:])
		col[i] = math.Float64frombits(bits)
	}
	return
}

// GetVarCustomData retrieves variable-length data of a custom type from the column with the given name
func (r *rowImpl) GetVarCustomData(colName string) (interface{}, error) {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return nil, err
	}
	vcol, ok := offset.Type().(splay.VarColumnType)
	if !ok {
		return nil, fmt.Errorf("Column %s is not a VarColumnType", colName)
	}
	// deserialize serialized data if present
	if ser, ok := r.serializedVarData[colName]; ok {
		if ser == nil {
			// if the serialized data is nil, then it represents a nil value
			delete(r.serializedVarData, colName)
			return nil, errors.NilValueError{Name: colName}
		}
		// serialized data should never be empty
		if len(ser) == 0 {
			return nil, fmt.Errorf("Serialized column data for column %s in partition %s should not be zero-length", colName, r.partID)
		}
		deser, err := vcol.Deserialize(ser)
		if err != nil {
			return nil, fmt.Errorf("Error deserializing variable-length column data for column %s in partition %s: %w", colName, r.partID, err)
		}
		r.varData[colName] = deser
		delete(r.serializedVarData, colName)
		return r.varData[colName], nil
	}
	err = r.checkIsNil(colName, offset)
	if err != nil {
		return nil, err
	}
	return r.varData[colName], nil
}

// GetVarBytes retrieves a variable-length byte array from the column with the given name
func (r *rowImpl) GetVarBytes(colName string) (col []byte, err error) {
	val, err := r.GetVarCustomData(colName)
	if err != nil {
		return nil, err
	}
	bval, ok := val.([]byte)
	if !ok {
		return nil, errors.TypeCoercionError{Name: colName, Expected: "bytes"}
	}
	return bval, nil
}

// GetVarString retrieves a single string from the column with the given name
func (r *rowImpl) GetVarString(colName string) (col string, err error) {
	val, err := r.GetVarCustomData(colName)
	if err != nil {
		return "", err
	}
	sval, ok := val.(string)
	if !ok {
		return "", errors.TypeCoercionError{Name: colName, Expected: "string"}
	}
	return sval, nil
}

// setBytes overwrites the raw fixed-width bytes for a column
func (r *rowImpl) setBytes(colName string, value []byte) (err error) {
	offset, e := r.schema.GetOffset(colName)
	if e != nil {
		err = e
		return
	}
	if len(value) > offset.Type().Size() {
		err = fmt.Errorf("Value is wider than column: %d/%d", offset.Type().Size(), len(value))
		return
	}
	r.setNotNil(offset)
	copy(r.data[offset.Start():offset.Start()+offset.Type().Size()], value)
	return
}

// SetBool modifies a single bool from the column with the given name.
func (r *rowImpl) SetBool(colName string, value bool) (err error) {
	offset, e := r.schema.GetOffset(colName)
	if e != nil {
		err = e
		return
	}
	var newVal byte
	if value {
		newVal = 1
	}
	r.setNotNil(offset)
	r.data[offset.Start()] = newVal
	return
}

// SetUint32 modifies a single uint32 from the column with the given name.
func (r *rowImpl) SetUint32(colName string, value uint32) (err error) {
	offset, e := r.schema.GetOffset(colName)
	if e != nil {
		err = e
		return
	}
	r.setNotNil(offset)
	binary.LittleEndian.PutUint32(r.data[offset.Start():offset.Start()+offset.Type().Size()], value)
	return
}

// SetUint64 modifies a single uint64 from the column with the given name.
func (r *rowImpl) SetUint64(colName string, value uint64) (err error) {
	offset, e := r.schema.GetOffset(colName)
	if e != nil {
		err = e
		return
	}
	r.setNotNil(offset)
	binary.LittleEndian.PutUint64(r.data[offset.Start():offset.Start()+offset.Type().Size()], value)
	return
}

// SetInt32 modifies a single int32 from the column with the given name.
func (r *rowImpl) SetInt32(colName string, value int32) (err error) {
	return r.SetUint32(colName, uint32(value))
}

// SetInt64 modifies a single int64 from the column with the given name.
func (r *rowImpl) SetInt64(colName string, value int64) (err error) {
	return r.SetUint64(colName, uint64(value))
}

// SetFloat32 modifies a single float32 from the column with the given name.
func (r *rowImpl) SetFloat32(colName string, value float32) (err error) {
	return r.SetUint32(colName, math.Float32bits(value))
}

// SetFloat64 modifies a single float64 from the column with the given name.
func (r *rowImpl) SetFloat64(colName string, value float64) (err error) {
	return r.SetUint64(colName, math.Float64bits(value))
}

// SetTime modifies a single Time from the column with the given name.
func (r *rowImpl) SetTime(colName string, value time.Time) (err error) {
	bits, err := value.MarshalBinary()
	if err != nil {
		return
	}
	return r.setBytes(colName, bits)
}

// SetString modifies a single fixed-length string from the column with the given name.
func (r *rowImpl) SetString(colName string, value string) (err error) {
	bits := []byte(value)
	return r.setBytes(colName, bits)
}

// SetVector modifies a fixed-length float64 vector from the column with the given name.
// The value must match the length declared by the column type.
func (r *rowImpl) SetVector(colName string, value []float64) (err error) {
	offset, e := r.schema.GetOffset(colName)
	if e != nil {
		err = e
		return
	}
	vtype, ok := offset.Type().(*splay.VectorColumnType)
	if !ok {
		return errors.TypeCoercionError{Name: colName, Expected: "vector"}
	}
	if len(value) != vtype.Length {
		return errors.VectorLengthError{Name: colName, Expected: vtype.Length, Actual: len(value)}
	}
	r.setNotNil(offset)
	for i, v := range value {
		binary.LittleEndian.PutUint64(r.data[offset.Start()+i*8:offset.Start()+(i+1)*8], math.Float64bits(v))
	}
	return
}

// SetVarCustomData stores variable-length data of a custom type in this Row
func (r *rowImpl) SetVarCustomData(colName string, value interface{}) (err error) {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return
	}
	r.setNotNil(offset)
	delete(r.serializedVarData, colName)
	r.varData[colName] = value
	return nil
}

// SetVarBytes modifies a single variable-length byte array from the column with the given name.
func (r *rowImpl) SetVarBytes(colName string, value []byte) (err error) {
	return r.SetVarCustomData(colName, value)
}

// SetVarString modifies a single string from the column with the given name.
func (r *rowImpl) SetVarString(colName string, value string) (err error) {
	return r.SetVarCustomData(colName, value)
}

// Repack resizes a row to a new Schema
func (r *rowImpl) Repack(newSchema splay.Schema) (splay.Row, error) {
	meta := make([]byte, newSchema.NumColumns())
	buff := make([]byte, newSchema.Size())
	varData := make(map[string]interface{})
	serializedVarData := make(map[string][]byte)
	// transfer values
	err := newSchema.ForEachColumn(func(name string, col splay.Column) error {
		// if we're widening instead of shrinking, there might be new columns
		if !r.schema.HasColumn(name) {
			return nil
		}
		// otherwise, copy old values
		oldCol, err := r.schema.GetOffset(name)
		if err != nil {
			return err
		}
		if !splay.IsVariableLength(oldCol.Type()) {
			copy(buff[col.Start():col.Start()+col.Type().Size()], r.data[oldCol.Start():oldCol.Start()+oldCol.Type().Size()])
		} else if v, ok := r.varData[name]; ok {
			varData[name] = v
		} else if ser, ok := r.serializedVarData[name]; ok {
			serializedVarData[name] = ser
		}
		meta[col.Index()] = r.meta[oldCol.Index()]
		return nil
	})
	if err != nil {
		return nil, err
	}
	// no partID, because this new row belongs to no partition
	return &rowImpl{"", meta, buff, varData, serializedVarData, newSchema}, nil
}
