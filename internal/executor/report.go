package executor

import (
	"context"

	"github.com/specialistvlad/mpipgo/internal/model"
)

// Failure records a document that could not be parsed.
type Failure struct {
	Path string
	Err  error
}

// Report is the outcome of a batch. Records and Failures each keep the
// order of the input paths.
type Report struct {
	Records  []*model.ParsedRecord
	Failures []Failure
}

// Total returns the number of documents in the batch.
func (r *Report) Total() int {
	return len(r.Records) + len(r.Failures)
}

func newReport(paths []string, results []result) *Report {
	report := &Report{}
	for i, res := range results {
		if res.err != nil {
			report.Failures = append(report.Failures, Failure{Path: paths[i], Err: res.err})
			continue
		}
		report.Records = append(report.Records, res.record)
	}
	return report
}

func (e *Executor) notifyParsed(ctx context.Context, path string, rec *model.ParsedRecord) {
	for _, o := range e.observers {
		o.DocumentParsed(ctx, path, rec)
	}
}

func (e *Executor) notifyFailed(ctx context.Context, path string, err error) {
	for _, o := range e.observers {
		o.DocumentFailed(ctx, path, err)
	}
}
