package partition

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"

	"github.com/go-splay/splay"
	"github.com/pierrec/lz4"
)

// partitionPayload is the gob wire format for a Partition. Variable-length
// column values are serialized per-column via their VarColumnType, and are
// deserialized lazily on first access after loading.
type partitionPayload struct {
	ID      string
	MaxRows int
	NumRows int
	Rows    []byte
	RowMeta []byte
	VarData []map[string][]byte
}

// ToBytes serializes a Partition
func ToBytes(p splay.Partition) ([]byte, error) {
	impl, ok := p.(*partitionImpl)
	if !ok {
		return nil, fmt.Errorf("Partition was not produced by this package")
	}
	payload := &partitionPayload{
		ID:      impl.id,
		MaxRows: impl.maxRows,
		NumRows: impl.numRows,
		Rows:    impl.rows[:impl.numRows*impl.schema.Size()],
		RowMeta: impl.rowMeta[:impl.numRows*impl.schema.NumColumns()],
		VarData: make([]map[string][]byte, impl.numRows),
	}
	for i := 0; i < impl.numRows; i++ {
		serialized := make(map[string][]byte)
		for name, ser := range impl.getSerializedVarRowData(i) {
			serialized[name] = ser
		}
		for name, val := range impl.getVarRowData(i) {
			col, err := impl.schema.GetOffset(name)
			if err != nil {
				return nil, err
			}
			vcol, ok := col.Type().(splay.VarColumnType)
			if !ok {
				return nil, fmt.Errorf("Column %s is not a VarColumnType", name)
			}
			ser, err := vcol.Serialize(val)
			if err != nil {
				return nil, err
			}
			serialized[name] = ser
		}
		payload.VarData[i] = serialized
	}
	buff := new(bytes.Buffer)
	e := gob.NewEncoder(buff)
	if err := e.Encode(payload); err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// FromBytes produces a Partition from serialized data
func FromBytes(data []byte, schema splay.Schema) (splay.Partition, error) {
	var payload partitionPayload
	d := gob.NewDecoder(bytes.NewBuffer(data))
	if err := d.Decode(&payload); err != nil {
		return nil, err
	}
	part := createPartitionImpl(payload.MaxRows, schema)
	part.id = payload.ID
	part.numRows = payload.NumRows
	copy(part.rows, payload.Rows)
	copy(part.rowMeta, payload.RowMeta)
	for i := 0; i < payload.NumRows; i++ {
		part.serializedVarRowData[i] = payload.VarData[i]
	}
	return part, nil
}

// LZ4PartitionSerializer is a PartitionSerializer which frames gob-encoded
// partition data with the lz4 compression algorithm
type LZ4PartitionSerializer struct {
	compressor         *lz4.Writer
	decompressor       *lz4.Reader
	reusableReadBuffer *bytes.Buffer
}

// NewLZ4PartitionSerializer instantiates a new LZ4PartitionSerializer
func NewLZ4PartitionSerializer() splay.PartitionSerializer {
	compressor := lz4.NewWriter(new(bytes.Buffer))
	decompressor := lz4.NewReader(new(bytes.Buffer))
	return &LZ4PartitionSerializer{
		compressor:         compressor,
		decompressor:       decompressor,
		reusableReadBuffer: new(bytes.Buffer),
	}
}

// Compress serializes and compresses partition data to a write stream
func (lz4pc *LZ4PartitionSerializer) Compress(w io.Writer, part splay.Partition) error {
	data, err := ToBytes(part)
	if err != nil {
		return err
	}
	lz4pc.compressor.Reset(w)
	_, err = lz4pc.compressor.Write(data)
	if err != nil {
		return err
	}
	return lz4pc.compressor.Close()
}

// Decompress decompresses and deserializes partition data from a read stream
func (lz4pc *LZ4PartitionSerializer) Decompress(r io.Reader, schema splay.Schema) (splay.Partition, error) {
	lz4pc.decompressor.Reset(r)
	lz4pc.reusableReadBuffer.Reset()
	_, err := lz4pc.reusableReadBuffer.ReadFrom(lz4pc.decompressor)
	if err != nil {
		return nil, err
	}
	return FromBytes(lz4pc.reusableReadBuffer.Bytes(), schema)
}
