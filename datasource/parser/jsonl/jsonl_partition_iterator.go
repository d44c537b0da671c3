package jsonl

import (
	"bufio"
	"log"
	"sync"

	"github.com/go-splay/splay"
	"github.com/go-splay/splay/datasource"
	"github.com/go-splay/splay/errors"
	"github.com/tidwall/gjson"
)

type jsonlFilePartitionIterator struct {
	parser       *Parser
	scanner      *bufio.Scanner
	hasNext      bool
	source       splay.DataSource
	schema       splay.Schema
	lock         sync.Mutex
	endListeners []func()
}

// OnEnd registers a listener which fires when this iterator runs out of Partitions
func (jsonli *jsonlFilePartitionIterator) OnEnd(onEnd func()) {
	jsonli.lock.Lock()
	defer jsonli.lock.Unlock()
	jsonli.endListeners = append(jsonli.endListeners, onEnd)
}

// HasNextPartition returns true iff this PartitionIterator can produce another Partition
func (jsonli *jsonlFilePartitionIterator) HasNextPartition() bool {
	jsonli.lock.Lock()
	defer jsonli.lock.Unlock()
	return jsonli.hasNext
}

// NextPartition returns the next Partition if one is available, or an error
func (jsonli *jsonlFilePartitionIterator) NextPartition() (splay.Partition, func(), error) {
	jsonli.lock.Lock()
	defer jsonli.lock.Unlock()
	if !jsonli.hasNext {
		return nil, nil, errors.NoMorePartitionsError{}
	}
	colNames := jsonli.schema.ColumnNames()
	colTypes := jsonli.schema.ColumnTypes()
	part := datasource.CreateBuildablePartition(jsonli.parser.PartitionSize(), jsonli.schema)
	// parse lines
	tempRow := datasource.CreateTempRow()
	for {
		// If the partition is full, we're done
		if part.GetNumRows() == part.GetMaxRows() {
			return part, nil, nil
		}
		// Otherwise, grab another line from the file
		hasNext := jsonli.scanner.Scan()
		if !hasNext {
			jsonli.hasNext = false
			for _, l := range jsonli.endListeners {
				l()
			}
			jsonli.endListeners = []func(){}
			return part, nil, nil
		}
		if err := jsonli.scanner.Err(); err != nil {
			return nil, nil, err
		}
		rowString := jsonli.scanner.Text()
		// create a new row to place values into
		row, err := part.AppendEmptyRowData(tempRow)
		if err != nil {
			return nil, nil, err
		}
		err = parseJSONRow(colNames, colTypes, gjson.Parse(rowString), row)
		if err != nil {
			log.Printf("Unable to parse line:\n\t%s", rowString)
			return nil, nil, err
		}
	}
}
