package app

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/specialistvlad/mpipgo/internal/executor"
	"github.com/specialistvlad/mpipgo/internal/model"
	"github.com/specialistvlad/mpipgo/internal/store"
)

var (
	titleColor = color.New(color.FgHiMagenta, color.Bold)
	okColor    = color.New(color.FgGreen)
	errColor   = color.New(color.FgHiRed)
)

// progressObserver advances a progress bar as documents finish.
type progressObserver struct {
	bar *progressbar.ProgressBar
}

func newProgressObserver(w io.Writer, total int) *progressObserver {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("parsing reports"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	return &progressObserver{bar: bar}
}

func (p *progressObserver) DocumentParsed(context.Context, string, *model.ParsedRecord) {
	_ = p.bar.Add(1)
}

func (p *progressObserver) DocumentFailed(context.Context, string, error) {
	_ = p.bar.Add(1)
}

func (p *progressObserver) finish() {
	_ = p.bar.Finish()
}

// formatMPIPercentage renders the headline MPI share, or N/A when the
// report had no aggregate row.
func formatMPIPercentage(rec *model.ParsedRecord) string {
	if pct := rec.Summary.TotalMPIPercentage; pct != nil {
		return strconv.FormatFloat(*pct, 'f', -1, 64)
	}
	return "N/A"
}

// printRecords writes one line per document in input order.
func printRecords(w io.Writer, report *executor.Report) {
	for _, rec := range report.Records {
		fmt.Fprintf(w, "Parsed: %s\n", rec.Path)
		fmt.Fprintf(w, "  - Interface: %s, Nodes: %d, MPI%%: %s\n",
			rec.InterfaceType, rec.RunInfo.NumNodes, formatMPIPercentage(rec))
	}
	for _, f := range report.Failures {
		errColor.Fprintf(w, "Error parsing %s: %v\n", f.Path, f.Err)
	}
}

// printSummary writes the end-of-run totals. upload is nil in dry-run mode
// and when uploadErr is set.
func printSummary(w io.Writer, report *executor.Report, upload *store.UploadReport, uploadErr error) {
	byInterface := map[string]int{}
	byNodes := map[string]int{}
	for _, rec := range report.Records {
		byInterface[rec.InterfaceType]++
		byNodes[strconv.Itoa(rec.RunInfo.NumNodes)]++
	}

	fmt.Fprintln(w)
	titleColor.Fprintln(w, "=== SUMMARY ===")
	fmt.Fprintf(w, "Total experiments: %d\n", len(report.Records))
	if n := len(report.Failures); n > 0 {
		errColor.Fprintf(w, "Failed to parse: %d\n", n)
	}
	fmt.Fprintf(w, "By interface: %s\n", formatCounts(byInterface))
	fmt.Fprintf(w, "By node count: %s\n", formatCounts(byNodes))

	if uploadErr != nil {
		errColor.Fprintf(w, "Upload failed: %v\n", uploadErr)
		return
	}
	if upload == nil {
		fmt.Fprintln(w, "Upload: skipped (dry run)")
		return
	}
	okColor.Fprintf(w, "Uploaded: %d\n", len(upload.Stored))
	if len(upload.Failed) > 0 {
		errColor.Fprintf(w, "Failed uploads: %s\n", strings.Join(upload.Failed, ", "))
	}
}

// formatCounts renders counts as "k=v" pairs sorted by key, with numeric
// keys in numeric order.
func formatCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ni, erri := strconv.Atoi(keys[i])
		nj, errj := strconv.Atoi(keys[j])
		if erri == nil && errj == nil {
			return ni < nj
		}
		return keys[i] < keys[j]
	})

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, counts[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
