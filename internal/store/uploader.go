package store

import (
	"context"
	"time"

	"github.com/specialistvlad/mpipgo/internal/ctxlog"
	"github.com/specialistvlad/mpipgo/internal/model"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultUploadTimeout bounds a single Save call.
	DefaultUploadTimeout = 30 * time.Second
	// DefaultUploadConcurrency is the number of concurrent Save calls.
	DefaultUploadConcurrency = 4
)

// UploadReport lists the outcome of a batch upload in input order.
type UploadReport struct {
	Stored []Location
	// Failed holds the filenames of records that could not be stored.
	Failed []string
}

// Uploader saves records to a Store, one location per record.
type Uploader struct {
	store       Store
	partition   Partition
	timeout     time.Duration
	concurrency int
	newLocation func(*model.ParsedRecord, Partition) Location
}

// UploaderOption configures an Uploader.
type UploaderOption func(*Uploader)

// WithTimeout sets the per-record timeout.
func WithTimeout(d time.Duration) UploaderOption {
	return func(u *Uploader) {
		if d > 0 {
			u.timeout = d
		}
	}
}

// WithConcurrency sets the number of concurrent saves.
func WithConcurrency(n int) UploaderOption {
	return func(u *Uploader) {
		if n > 0 {
			u.concurrency = n
		}
	}
}

// NewUploader creates an Uploader for an explicitly constructed Store.
func NewUploader(s Store, p Partition, opts ...UploaderOption) *Uploader {
	u := &Uploader{
		store:       s,
		partition:   p,
		timeout:     DefaultUploadTimeout,
		concurrency: DefaultUploadConcurrency,
		newLocation: NewLocation,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Upload stores a single record under a fresh location.
func (u *Uploader) Upload(ctx context.Context, rec *model.ParsedRecord) (Location, error) {
	loc := u.newLocation(rec, u.partition)

	saveCtx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	if err := u.store.Save(saveCtx, loc, rec); err != nil {
		return Location{}, err
	}
	return loc, nil
}

// UploadAll stores every record. A failed record is logged and listed in
// the report; it never cancels the others.
func (u *Uploader) UploadAll(ctx context.Context, records []*model.ParsedRecord) *UploadReport {
	logger := ctxlog.FromContext(ctx)

	locs := make([]Location, len(records))
	errs := make([]error, len(records))

	var g errgroup.Group
	g.SetLimit(u.concurrency)
	for i, rec := range records {
		g.Go(func() error {
			locs[i], errs[i] = u.Upload(ctx, rec)
			if errs[i] != nil {
				logger.Error("Failed to upload record.", "filename", rec.Filename, "error", errs[i])
				return nil
			}
			logger.Info("Uploaded record.", "location", locs[i].String())
			return nil
		})
	}
	_ = g.Wait()

	report := &UploadReport{}
	for i, rec := range records {
		if errs[i] != nil {
			report.Failed = append(report.Failed, rec.Filename)
			continue
		}
		report.Stored = append(report.Stored, locs[i])
	}
	return report
}
