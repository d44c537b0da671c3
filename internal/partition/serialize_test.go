package partition

import (
	"bytes"
	"testing"

	"github.com/go-splay/splay"
	"github.com/go-splay/splay/schema"
	"github.com/stretchr/testify/require"
)

func createSerializeTestPartition(t *testing.T) (splay.Schema, *partitionImpl) {
	s := schema.CreateSchema()
	s.CreateColumn("fixed", &splay.Uint64ColumnType{})
	s.CreateColumn("var", &splay.VarStringColumnType{})
	part := createPartitionImpl(4, s)
	for i := 0; i < 3; i++ {
		row, err := part.AppendEmptyRowData(CreateTempRow())
		require.Nil(t, err)
		require.Nil(t, row.SetUint64("fixed", uint64(i)))
		require.Nil(t, row.SetVarString("var", "value"))
	}
	return s, part
}

func TestPartitionToFromBytes(t *testing.T) {
	s, part := createSerializeTestPartition(t)
	data, err := ToBytes(part)
	require.Nil(t, err)
	loaded, err := FromBytes(data, s)
	require.Nil(t, err)
	require.Equal(t, part.ID(), loaded.ID())
	require.Equal(t, 3, loaded.GetNumRows())
	for i := 0; i < 3; i++ {
		row := loaded.GetRow(i)
		u, err := row.GetUint64("fixed")
		require.Nil(t, err)
		require.Equal(t, uint64(i), u)
		// variable-length data deserializes lazily on first access
		v, err := row.GetVarString("var")
		require.Nil(t, err)
		require.Equal(t, "value", v)
	}
}

func TestLZ4PartitionSerializer(t *testing.T) {
	s, part := createSerializeTestPartition(t)
	serializer := NewLZ4PartitionSerializer()
	buff := new(bytes.Buffer)
	require.Nil(t, serializer.Compress(buff, part))
	loaded, err := serializer.Decompress(buff, s)
	require.Nil(t, err)
	require.Equal(t, part.GetNumRows(), loaded.GetNumRows())
	v, err := loaded.GetRow(2).GetVarString("var")
	require.Nil(t, err)
	require.Equal(t, "value", v)
	u, err := loaded.GetRow(2).GetUint64("fixed")
	require.Nil(t, err)
	require.Equal(t, uint64(2), u)
}
