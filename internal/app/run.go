package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/mpipgo/internal/ctxlog"
	"github.com/specialistvlad/mpipgo/internal/dump"
	"github.com/specialistvlad/mpipgo/internal/executor"
	"github.com/specialistvlad/mpipgo/internal/fsutil"
	"github.com/specialistvlad/mpipgo/internal/notify"
	"github.com/specialistvlad/mpipgo/internal/store"
)

// Run discovers, parses, dumps and uploads the reports named by the
// configuration, then prints a summary.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.ctx = ctx
	a.logger.Debug("App.Run method started.")

	a.healthCheckServer()
	defer a.closeHealthCheckServer()

	paths, err := fsutil.FindReports(a.config.InputPath, fsutil.DefaultReportExtensions)
	if errors.Is(err, fsutil.ErrNoReports) {
		a.logger.Warn("No files found to process.", "path", a.config.InputPath)
		return nil
	}
	if err != nil {
		return err
	}
	a.status.discovered.Store(int64(len(paths)))
	a.logger.Info("Found files to process.", "count", len(paths))

	publisher := a.connectNotifier(ctx)
	if publisher != nil {
		defer publisher.Close()
	}

	report := a.parseAll(ctx, paths, publisher)
	printRecords(a.outW, report)

	if err := a.writeDumps(report); err != nil {
		return err
	}

	var upload *store.UploadReport
	var uploadErr error
	if a.config.DryRun {
		a.logger.Info("Dry run mode, skipping upload.")
	} else {
		upload, uploadErr = a.upload(ctx, report)
		if uploadErr != nil {
			a.logger.Error("Upload aborted.", "error", uploadErr)
		} else if publisher != nil {
			publisher.UploadDone(ctx, len(upload.Stored), len(upload.Failed))
		}
	}

	printSummary(a.outW, report, upload, uploadErr)
	a.logger.Debug("App.Run method finished.")
	return uploadErr
}

func (a *App) parseAll(ctx context.Context, paths []string, publisher *notify.Publisher) *executor.Report {
	observers := []executor.Observer{a.status}
	var bar *progressObserver
	if a.config.Progress {
		bar = newProgressObserver(a.outW, len(paths))
		observers = append(observers, bar)
	}
	if publisher != nil {
		observers = append(observers, publisher)
	}

	a.logger.Info("Starting concurrent parsing.", "workers", a.config.WorkerCount)
	report := executor.New(a.parser, a.config.WorkerCount, observers...).Execute(ctx, paths)
	if bar != nil {
		bar.finish()
	}
	a.logger.Info("Parsing finished.", "parsed", len(report.Records), "failed", len(report.Failures))
	return report
}

// connectNotifier returns nil when notifications are disabled or the server
// is unreachable; neither stops the run.
func (a *App) connectNotifier(ctx context.Context) *notify.Publisher {
	if a.config.NotifyURL == "" {
		return nil
	}
	publisher, err := a.dialNotifier(ctx, a.config.NotifyURL)
	if err != nil {
		a.logger.Warn("Notifications disabled: could not connect.", "url", a.config.NotifyURL, "error", err)
		return nil
	}
	return publisher
}

func (a *App) writeDumps(report *executor.Report) error {
	if path := a.config.OutputJSON; path != "" {
		if err := dump.ToFile(path, report.Records, dump.WriteJSON); err != nil {
			return err
		}
		a.logger.Info("Saved parsed data.", "path", path, "format", "json")
	}
	if path := a.config.OutputMsgpack; path != "" {
		if err := dump.ToFile(path, report.Records, dump.WriteMsgpack); err != nil {
			return err
		}
		a.logger.Info("Saved parsed data.", "path", path, "format", "msgpack")
	}
	return nil
}

func (a *App) upload(ctx context.Context, report *executor.Report) (*store.UploadReport, error) {
	st, err := a.openStore(ctx, a.config)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			a.logger.Warn("Failed to close store.", "error", err)
		}
	}()

	uploader := store.NewUploader(st, a.config.Partition,
		store.WithTimeout(a.config.UploadTimeout),
		store.WithConcurrency(a.config.WorkerCount),
	)
	result := uploader.UploadAll(ctx, report.Records)
	a.status.uploaded.Store(int64(len(result.Stored)))
	a.status.uploadFailed.Store(int64(len(result.Failed)))
	a.logger.Info("Upload finished.", "stored", len(result.Stored), "failed", len(result.Failed))
	return result, nil
}
