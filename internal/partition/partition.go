package partition

import (
	"log"

	"github.com/go-splay/splay"
	uuid "github.com/gofrs/uuid"
)

// partitionImpl is Splay's internal implementation of Partition
type partitionImpl struct {
	id                   string
	maxRows              int
	numRows              int
	rows                 []byte
	varRowData           []map[string]interface{}
	serializedVarRowData []map[string][]byte // for receiving serialized data from materialized partitions
	rowMeta              []byte
	schema               splay.Schema
}

// createPartitionImpl creates a new Partition containing an empty byte array and a schema
func createPartitionImpl(maxRows int, schema splay.Schema) *partitionImpl {
	id, err := uuid.NewV4()
	if err != nil {
		log.Fatalf("failed to generate UUID for Partition: %v", err)
	}
	return &partitionImpl{
		id:                   id.String(),
		maxRows:              maxRows,
		numRows:              0,
		rows:                 make([]byte, maxRows*schema.Size()),
		varRowData:           make([]map[string]interface{}, maxRows),
		serializedVarRowData: make([]map[string][]byte, maxRows),
		rowMeta:              make([]byte, maxRows*schema.NumColumns()),
		schema:               schema,
	}
}

// CreatePartition creates a new Partition containing an empty byte array and a schema
func CreatePartition(maxRows int, schema splay.Schema) splay.Partition {
	return createPartitionImpl(maxRows, schema)
}

// ID retrieves the ID of this Partition
func (p *partitionImpl) ID() string {
	return p.id
}

// GetMaxRows retrieves the maximum number of rows in this Partition
func (p *partitionImpl) GetMaxRows() int {
	return p.maxRows
}

// GetNumRows retrieves the number of rows in this Partition
func (p *partitionImpl) GetNumRows() int {
	return p.numRows
}

// GetSchema retrieves the Schema of this Partition
func (p *partitionImpl) GetSchema() splay.Schema {
	return p.schema
}

// getRow populates a reusable row struct with data from this Partition, without allocation
func (p *partitionImpl) getRow(row *rowImpl, rowNum int) splay.Row {
	row.partID = p.id
	row.meta = p.getRowMeta(rowNum)
	row.data = p.getRowData(rowNum)
	row.varData = p.getVarRowData(rowNum)
	row.serializedVarData = p.getSerializedVarRowData(rowNum)
	row.schema = p.schema
	return row
}

// GetRow retrieves a specific row from this Partition
func (p *partitionImpl) GetRow(rowNum int) splay.Row {
	return &rowImpl{
		partID:            p.id,
		meta:              p.getRowMeta(rowNum),
		data:              p.getRowData(rowNum),
		varData:           p.getVarRowData(rowNum),
		serializedVarData: p.getSerializedVarRowData(rowNum),
		schema:            p.schema,
	}
}

// getRowData retrieves a specific row's fixed-width data from this Partition
func (p *partitionImpl) getRowData(rowNum int) []byte {
	return p.rows[rowNum*p.schema.Size() : (rowNum+1)*p.schema.Size()]
}

// getRowMeta retrieves a specific row's metadata from this Partition
func (p *partitionImpl) getRowMeta(rowNum int) []byte {
	return p.rowMeta[rowNum*p.schema.NumColumns() : (rowNum+1)*p.schema.NumColumns()]
}

// getVarRowData retrieves a specific row's variable-length data from this Partition
func (p *partitionImpl) getVarRowData(rowNum int) map[string]interface{} {
	if p.varRowData[rowNum] == nil {
		p.varRowData[rowNum] = make(map[string]interface{})
	}
	return p.varRowData[rowNum]
}

// getSerializedVarRowData retrieves a specific row's serialized variable-length data from this Partition
func (p *partitionImpl) getSerializedVarRowData(rowNum int) map[string][]byte {
	if p.serializedVarRowData[rowNum] == nil {
		p.serializedVarRowData[rowNum] = make(map[string][]byte)
	}
	return p.serializedVarRowData[rowNum]
}
