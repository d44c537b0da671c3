package engine

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-splay/splay"
	ipartition "github.com/go-splay/splay/internal/partition"
)

// Result is the product of running a DataFrame: collected Partitions
// (for jobs ending in a Collect) or a merged Accumulator (for jobs
// ending in an Accumulate)
type Result struct {
	schema      splay.Schema
	partitions  []splay.CollectedPartition
	accumulator splay.Accumulator
}

// GetSchema returns the Schema of the collected data
func (r *Result) GetSchema() splay.Schema {
	return r.schema
}

// GetAccumulator returns the merged Accumulator for this Result, if the job ended in an Accumulate
func (r *Result) GetAccumulator() splay.Accumulator {
	return r.accumulator
}

// GetNumPartitions returns the number of collected Partitions
func (r *Result) GetNumPartitions() int {
	return len(r.partitions)
}

// ForEachPartition iterates over the collected Partitions
func (r *Result) ForEachPartition(fn func(part splay.CollectedPartition) error) error {
	for _, part := range r.partitions {
		if err := fn(part); err != nil {
			return err
		}
	}
	return nil
}

// ForEachRow iterates over every Row of every collected Partition
func (r *Result) ForEachRow(fn splay.MapOperation) error {
	for _, part := range r.partitions {
		if err := part.ForEachRow(fn); err != nil {
			return err
		}
	}
	return nil
}

// Save materializes collected Partitions to a write stream, lz4-compressed.
// The stream can be reloaded with Load, given an identical Schema.
func (r *Result) Save(w io.Writer) error {
	if r.partitions == nil && r.accumulator != nil {
		return fmt.Errorf("Cannot save an accumulated Result")
	}
	serializer := ipartition.NewLZ4PartitionSerializer()
	count := make([]byte, 4)
	binary.LittleEndian.PutUint32(count, uint32(len(r.partitions)))
	if _, err := w.Write(count); err != nil {
		return err
	}
	for _, part := range r.partitions {
		buff := new(bytes.Buffer)
		if err := serializer.Compress(buff, part); err != nil {
			return err
		}
		block := buff.Bytes()
		frame := make([]byte, 4)
		binary.LittleEndian.PutUint32(frame, uint32(len(block)))
		if _, err := w.Write(frame); err != nil {
			return err
		}
		if _, err := w.Write(block); err != nil {
			return err
		}
	}
	return nil
}

// Load reads materialized Partitions from a read stream produced by Save
func Load(r io.Reader, schema splay.Schema) (*Result, error) {
	serializer := ipartition.NewLZ4PartitionSerializer()
	header := make([]byte, 4)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	numParts := int(binary.LittleEndian.Uint32(header))
	result := &Result{schema: schema}
	for i := 0; i < numParts; i++ {
		if _, err := io.ReadFull(r, header); err != nil {
			return nil, err
		}
		blockLen := int64(binary.LittleEndian.Uint32(header))
		part, err := serializer.Decompress(io.LimitReader(r, blockLen), schema)
		if err != nil {
			return nil, err
		}
		cpart, ok := part.(splay.CollectedPartition)
		if !ok {
			return nil, fmt.Errorf("Loaded Partition %s cannot be iterated", part.ID())
		}
		result.partitions = append(result.partitions, cpart)
	}
	return result, nil
}
