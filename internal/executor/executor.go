// Package executor parses a batch of reports concurrently. Every document is
// independent, so the executor is a plain pool of workers pulling paths from
// a channel; results are written by input index and need no locking.
package executor

import (
	"context"
	"sync"

	"github.com/specialistvlad/mpipgo/internal/ctxlog"
	"github.com/specialistvlad/mpipgo/internal/model"
)

// DefaultWorkers is used when New is given a non-positive worker count.
const DefaultWorkers = 4

// Parser turns one report file into a record. *mpip.Parser satisfies it.
type Parser interface {
	ParseFile(path string) (*model.ParsedRecord, error)
}

// Observer is notified as documents finish. Methods are called from worker
// goroutines and must be safe for concurrent use.
type Observer interface {
	DocumentParsed(ctx context.Context, path string, rec *model.ParsedRecord)
	DocumentFailed(ctx context.Context, path string, err error)
}

// Executor runs a Parser over many files with a bounded number of workers.
type Executor struct {
	parser     Parser
	numWorkers int
	observers  []Observer
}

// New creates a new batch executor.
func New(parser Parser, numWorkers int, observers ...Observer) *Executor {
	if numWorkers <= 0 {
		numWorkers = DefaultWorkers
	}
	return &Executor{
		parser:     parser,
		numWorkers: numWorkers,
		observers:  observers,
	}
}

// job is a unit of work handed to a worker.
type job struct {
	index int
	path  string
}

// result is what a worker stores for one job.
type result struct {
	record *model.ParsedRecord
	err    error
}

// Execute parses every path and returns a Report in input order. A failing
// document never stops the others. When ctx is cancelled, documents not yet
// started are reported as failed with the context error.
func (e *Executor) Execute(ctx context.Context, paths []string) *Report {
	logger := ctxlog.FromContext(ctx)

	results := make([]result, len(paths))
	jobs := make(chan job, len(paths))
	for i, p := range paths {
		jobs <- job{index: i, path: p}
	}
	close(jobs)

	workers := min(e.numWorkers, len(paths))
	logger.Debug("Starting worker pool.", "workers", workers, "documents", len(paths))

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(workerID int) {
			defer wg.Done()
			e.worker(ctx, jobs, results, workerID)
		}(i)
	}
	wg.Wait()
	logger.Debug("All documents processed.")

	return newReport(paths, results)
}
