package executor

import (
	"context"

	"github.com/specialistvlad/mpipgo/internal/ctxlog"
)

// worker is the processing loop for a single concurrent worker. Each job
// writes only its own slot of results.
func (e *Executor) worker(ctx context.Context, jobs <-chan job, results []result, workerID int) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Worker started.", "workerID", workerID)

	for j := range jobs {
		workerLogger := logger.With("workerID", workerID, "path", j.path)

		if err := ctx.Err(); err != nil {
			results[j.index] = result{err: err}
			e.notifyFailed(ctx, j.path, err)
			continue
		}

		workerLogger.Debug("Worker picked up document.")
		rec, err := e.parser.ParseFile(j.path)
		if err != nil {
			workerLogger.Warn("Document could not be parsed.", "error", err)
			results[j.index] = result{err: err}
			e.notifyFailed(ctx, j.path, err)
			continue
		}

		if skipped := rec.SkippedRows(); skipped > 0 {
			workerLogger.Debug("Rows skipped while parsing document.",
				"mpi_time", rec.MPITimeStats.Skipped,
				"aggregate_time", rec.AggregateTimeStats.Skipped,
				"message_size", rec.MessageSizeStats.Skipped,
				"callsite", rec.CallsiteStats.Skipped,
			)
		}
		workerLogger.Debug("Document parsed.", "interface", rec.InterfaceType, "nodes", rec.RunInfo.NumNodes)

		results[j.index] = result{record: rec}
		e.notifyParsed(ctx, j.path, rec)
	}
	logger.Debug("Worker finished.", "workerID", workerID)
}
