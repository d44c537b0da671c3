package accumulators

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/go-splay/splay"
)

// Compose returns a new Composed Accumulator
func Compose(faccs ...func() splay.Accumulator) func() splay.Accumulator {
	return func() splay.Accumulator {
		accs := make([]splay.Accumulator, len(faccs))
		for i, f := range faccs {
			accs[i] = f()
		}
		return &Composed{accs: accs}
	}
}

// Composed composes other Accumulators
type Composed struct {
	accs []splay.Accumulator
}

// GetResults returns the contained Accumulators, so that their results may be accessed
func (c *Composed) GetResults() []splay.Accumulator {
	return c.accs
}

// Accumulate adds a row to all contained Accumulators
func (c *Composed) Accumulate(row splay.Row) error {
	for _, a := range c.accs {
		err := a.Accumulate(row)
		if err != nil {
			return err
		}
	}
	return nil
}

// Merge merges another Composed Accumulator into this one, merging all contained Accumulators
func (c *Composed) Merge(o splay.Accumulator) error {
	compa, ok := o.(*Composed)
	if !ok {
		return fmt.Errorf("Incoming accumulator is not a Composed Accumulator")
	}
	for i, a := range c.accs {
		err := a.Merge(compa.accs[i])
		if err != nil {
			return err
		}
	}
	return nil
}

// ToBytes serializes this Accumulator
func (c *Composed) ToBytes() ([]byte, error) {
	result := make([][]byte, len(c.accs))
	for i, a := range c.accs {
		buff, err := a.ToBytes()
		if err != nil {
			return nil, err
		}
		result[i] = buff
	}
	buff := new(bytes.Buffer)
	e := gob.NewEncoder(buff)
	err := e.Encode(result)
	if err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// FromBytes produce a new Accumulator from serialized data
func (c *Composed) FromBytes(buff []byte) (splay.Accumulator, error) {
	var deser [][]byte
	d := gob.NewDecoder(bytes.NewBuffer(buff))
	err := d.Decode(&deser)
	if err != nil {
		return nil, err
	}
	newAccs := make([]splay.Accumulator, len(c.accs))
	for i, b := range deser {
		a, err := c.accs[i].FromBytes(b)
		if err != nil {
			return nil, err
		}
		newAccs[i] = a
	}
	return &Composed{accs: newAccs}, nil
}
