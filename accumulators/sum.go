package accumulators

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-splay/splay"
)

// Adder returns a new Sum Accumulator
func Adder(colName string) func() splay.Accumulator {
	return func() splay.Accumulator {
		return &Sum{colName: colName}
	}
}

// Sum sums a numeric column across all records
type Sum struct {
	colName string
	sum     float64
}

// GetSum returns the column total from this Accumulator
func (a *Sum) GetSum() float64 {
	return a.sum
}

// Accumulate adds a row to this Accumulator
func (a *Sum) Accumulate(row splay.Row) error {
	offset, err := row.Schema().GetOffset(a.colName)
	if err != nil {
		return err
	}
	switch offset.Type().(type) {
	case *splay.Int32ColumnType:
		v, err := row.GetInt32(a.colName)
		if err != nil {
			return err
		}
		a.sum += float64(v)
	case *splay.Int64ColumnType:
		v, err := row.GetInt64(a.colName)
		if err != nil {
			return err
		}
		a.sum += float64(v)
	case *splay.Uint32ColumnType:
		v, err := row.GetUint32(a.colName)
		if err != nil {
			return err
		}
		a.sum += float64(v)
	case *splay.Uint64ColumnType:
		v, err := row.GetUint64(a.colName)
		if err != nil {
			return err
		}
		a.sum += float64(v)
	case *splay.Float32ColumnType:
		v, err := row.GetFloat32(a.colName)
		if err != nil {
			return err
		}
		a.sum += float64(v)
	case *splay.Float64ColumnType:
		v, err := row.GetFloat64(a.colName)
		if err != nil {
			return err
		}
		a.sum += float64(v)
	}
	return nil
}

// Merge merges another Accumulator into this one
func (a *Sum) Merge(o splay.Accumulator) error {
	ca, ok := o.(*Sum)
	if !ok {
		return fmt.Errorf("Incoming accumulator is not a Sum Accumulator")
	}
	a.sum += ca.sum
	return nil
}

// ToBytes serializes this Accumulator
func (a *Sum) ToBytes() ([]byte, error) {
	buff := make([]byte, 8)
	binary.LittleEndian.PutUint64(buff, math.Float64bits(a.sum))
	return buff, nil
}

// FromBytes produce a new Accumulator from serialized data
func (a *Sum) FromBytes(buff []byte) (splay.Accumulator, error) {
	return &Sum{colName: a.colName, sum: math.Float64frombits(binary.LittleEndian.Uint64(buff))}, nil
}
