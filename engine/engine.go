// Package engine provides a local, partition-parallel executor for DataFrames.
// Partitions are independent of one another, so they are processed by a pool
// of workers with no ordering guarantee between partitions; row order within
// each partition follows input order.
package engine

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/go-splay/splay"
	itypes "github.com/go-splay/splay/internal/types"
	iutil "github.com/go-splay/splay/internal/util"
	"github.com/go-splay/splay/logging"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Conf configures the local execution of a DataFrame
type Conf struct {
	NumWorkers      int         // the number of partitions processed concurrently. Defaults to runtime.NumCPU()
	CollectionLimit int         // the maximum number of Partitions retained by a Collect. Defaults to 10
	Logger          *zap.Logger // structured logger for execution progress. Defaults to a no-op logger
}

// Run executes a DataFrame against its DataSource, returning collected
// Partitions and/or a merged Accumulator, depending on the terminal
// operation of the frame. The job must end in a Collect or an Accumulate.
func Run(ctx context.Context, frame splay.DataFrame, conf *Conf) (*Result, error) {
	if conf == nil {
		conf = &Conf{}
	}
	numWorkers := conf.NumWorkers
	if numWorkers < 1 {
		numWorkers = runtime.NumCPU()
	}
	collectionLimit := conf.CollectionLimit
	if collectionLimit < 1 {
		collectionLimit = 10
	}
	logger := conf.Logger
	if logger == nil {
		logger = logging.CreateNopLogger()
	}

	eframe, ok := frame.(itypes.ExecutableDataFrame)
	if !ok {
		return nil, fmt.Errorf("DataFrame must be produced by a DataSource package")
	}
	// flatten the frame chain into execution order (root first)
	var frames []itypes.ExecutableDataFrame
	for f := eframe; f != nil; {
		frames = append([]itypes.ExecutableDataFrame{f}, frames...)
		parent := f.GetParent()
		if parent == nil {
			break
		}
		f = parent.(itypes.ExecutableDataFrame)
	}
	terminal := frames[len(frames)-1]
	var accumulatorTask itypes.AccumulatorTask
	var isCollect bool
	switch terminal.GetTaskType() {
	case splay.CollectTaskType:
		isCollect = true
		if ctask, ok := terminal.GetTask().(itypes.CollectionTask); ok {
			if ctask.GetCollectionLimit() > 0 {
				collectionLimit = ctask.GetCollectionLimit()
			}
		}
	case splay.AccumulateTaskType:
		accumulatorTask, ok = terminal.GetTask().(itypes.AccumulatorTask)
		if !ok {
			return nil, fmt.Errorf("Accumulate task does not supply an AccumulatorFactory")
		}
	default:
		return nil, fmt.Errorf("DataFrame must terminate in a Collect or an Accumulate")
	}

	source := eframe.GetDataSource()
	parser := eframe.GetParser()
	pmap, err := source.Analyze()
	if err != nil {
		return nil, fmt.Errorf("Unable to analyze DataSource: %w", err)
	}
	loaders := make(chan splay.PartitionLoader)

	result := &Result{schema: eframe.GetSchema()}
	var resultLock sync.Mutex
	var accumulators []splay.Accumulator

	wg, wctx := errgroup.WithContext(ctx)
	wg.Go(func() error {
		defer close(loaders)
		for pmap.HasNext() {
			select {
			case loaders <- pmap.Next():
			case <-wctx.Done():
				return wctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < numWorkers; w++ {
		var acc splay.Accumulator
		if accumulatorTask != nil {
			acc = accumulatorTask.GetAccumulatorFactory()()
			accumulators = append(accumulators, acc)
		}
		worker := &worker{
			id:     w,
			frames: frames,
			parser: parser,
			logger: logger,
			acc:    acc,
			collect: func(part splay.CollectedPartition) bool {
				if !isCollect {
					return true
				}
				resultLock.Lock()
				defer resultLock.Unlock()
				if len(result.partitions) >= collectionLimit {
					return false
				}
				result.partitions = append(result.partitions, part)
				return true
			},
		}
		wg.Go(func() error {
			for loader := range loaders {
				if err := worker.runLoader(wctx, loader); err != nil {
					return err
				}
				select {
				case <-wctx.Done():
					return wctx.Err()
				default:
				}
			}
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		return nil, err
	}
	// merge per-worker accumulators
	if accumulatorTask != nil && len(accumulators) > 0 {
		merged := accumulators[0]
		for _, acc := range accumulators[1:] {
			if err := merged.Merge(acc); err != nil {
				return nil, err
			}
		}
		result.accumulator = merged
	}
	return result, nil
}

// worker processes the partitions of one PartitionLoader at a time
type worker struct {
	id      int
	frames  []itypes.ExecutableDataFrame
	parser  splay.DataSourceParser
	logger  *zap.Logger
	acc     splay.Accumulator
	collect func(part splay.CollectedPartition) bool
}

func (w *worker) runLoader(ctx context.Context, loader splay.PartitionLoader) error {
	w.logger.Debug("loading partitions",
		zap.Int("worker", w.id),
		zap.String("loader", loader.ToString()),
	)
	pi, err := loader.Load(w.parser)
	if err != nil {
		return err
	}
	for pi.HasNextPartition() {
		part, unlock, err := pi.NextPartition()
		if err != nil {
			return err
		}
		if err := w.runPartition(ctx, part); err != nil {
			if unlock != nil {
				unlock()
			}
			return err
		}
		if unlock != nil {
			unlock()
		}
	}
	return nil
}

func (w *worker) runPartition(ctx context.Context, part splay.Partition) error {
	opart, ok := part.(splay.OperablePartition)
	if !ok {
		return fmt.Errorf("Partition %s is not operable", part.ID())
	}
	parts := []splay.OperablePartition{opart}
	for _, frame := range w.frames {
		if frame.GetParent() == nil {
			continue // the root frame sources data and has no work to do
		}
		task := frame.GetTask()
		var next []splay.OperablePartition
		for _, p := range parts {
			out, err := task.RunWorker(ctx, p)
			if err != nil {
				if merr, ok := err.(*multierror.Error); ok {
					w.logger.Error("row errors in partition",
						zap.String("partition", p.ID()),
						zap.String("errors", iutil.FormatMultiError(merr.Errors)),
					)
				}
				return err
			}
			next = append(next, out...)
		}
		parts = next
	}
	w.logger.Debug("processed partition",
		zap.Int("worker", w.id),
		zap.String("partition", part.ID()),
		zap.Int("outputPartitions", len(parts)),
	)
	for _, p := range parts {
		if w.acc != nil {
			cpart, ok := p.(splay.CollectedPartition)
			if !ok {
				return fmt.Errorf("Partition %s cannot be iterated", p.ID())
			}
			if err := cpart.ForEachRow(w.acc.Accumulate); err != nil {
				return err
			}
		} else {
			cpart, ok := p.(splay.CollectedPartition)
			if !ok {
				return fmt.Errorf("Partition %s cannot be collected", p.ID())
			}
			if !w.collect(cpart) {
				w.logger.Debug("collection limit reached, dropping partition",
					zap.Int("worker", w.id),
					zap.String("partition", p.ID()),
				)
			}
		}
	}
	return nil
}
