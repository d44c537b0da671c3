// Package testing provides convenience helpers for running DataFrames in tests
package testing

import (
	"context"

	"github.com/go-splay/splay"
	"github.com/go-splay/splay/engine"
)

// LocalRunFrame runs a DataFrame on the local engine with a certain number of workers
func LocalRunFrame(ctx context.Context, frame splay.DataFrame, numWorkers int) (result *engine.Result, err error) {
	// handle panics
	defer func() {
		if r := recover(); r != nil {
			if anErr, ok := r.(error); ok {
				err = anErr
			} else {
				panic(r)
			}
		}
	}()
	return engine.Run(ctx, frame, &engine.Conf{NumWorkers: numWorkers})
}
