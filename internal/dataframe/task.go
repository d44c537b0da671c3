package dataframe

import (
	"context"

	"github.com/go-splay/splay"
)

// noOpTask is a task that does nothing
type noOpTask struct{}

// RunWorker for noOpTask does nothing
func (s *noOpTask) RunWorker(ctx context.Context, previous splay.OperablePartition) ([]splay.OperablePartition, error) {
	return []splay.OperablePartition{previous}, nil
}
