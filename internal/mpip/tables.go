package mpip

import (
	"strings"

	"github.com/specialistvlad/mpipgo/internal/model"
)

// Section header markers, matched as substrings of the header line.
const (
	MarkerMPITime       = "@--- MPI Time (seconds) ---"
	MarkerAggregateTime = "@--- Aggregate Time (top twenty"
	MarkerMessageSize   = "@--- Aggregate Sent Message Size"
	MarkerCallsiteTime  = "@--- Callsite Time statistics"
)

// tableSchema describes how one section is laid out.
type tableSchema struct {
	marker string
	// title is the first token of the column title line.
	title string
	// arity is the minimum number of numeric columns after the label.
	arity int
}

var (
	mpiTimeSchema       = tableSchema{marker: MarkerMPITime, title: "Task", arity: 3}
	aggregateTimeSchema = tableSchema{marker: MarkerAggregateTime, title: "Call", arity: 5}
	messageSizeSchema   = tableSchema{marker: MarkerMessageSize, title: "Call", arity: 4}
	callsiteTimeSchema  = tableSchema{marker: MarkerCallsiteTime, title: "Name", arity: 7}
)

// extractTable locates the section described by schema and feeds every data
// row to mapRow. Rows that Tokenize rejects, or for which mapRow returns
// false, are counted as skipped. Blank lines and the column title line are
// not rows.
func extractTable(text string, schema tableSchema, mapRow func(Row) bool) (skipped int) {
	body, ok := sectionLines(splitLines(text), schema.marker)
	if !ok {
		return 0
	}

	for _, line := range body {
		tokens := strings.Fields(line)
		if len(tokens) == 0 || tokens[0] == schema.title {
			continue
		}
		row, ok := Tokenize(tokens, schema.arity)
		if !ok || !mapRow(row) {
			skipped++
		}
	}
	return skipped
}

// --- Field coercion helpers ---

func intField(fields []string, i int) (int, bool) {
	if i >= len(fields) {
		return 0, false
	}
	return Coerce(fields[i]).AsInt()
}

func floatField(fields []string, i int) (float64, bool) {
	if i >= len(fields) {
		return 0, false
	}
	return Coerce(fields[i]).AsFloat()
}

// optionalFloatField reads a trailing column that mpiP may omit. A missing
// column is nil; a present column that is not a number fails the row.
func optionalFloatField(fields []string, i int) (*float64, bool) {
	if i >= len(fields) {
		return nil, true
	}
	v, ok := Coerce(fields[i]).AsFloat()
	if !ok {
		return nil, false
	}
	return &v, true
}

// taskField reads a rank column, where the aggregate marker stands for all
// ranks.
func taskField(tok string) (model.TaskID, bool) {
	if tok == AggregateMarker {
		return model.AggregateTask(), true
	}
	r, ok := Coerce(tok).AsInt()
	if !ok || r < 0 {
		return model.TaskID{}, false
	}
	return model.Rank(r), true
}

// --- Extractors ---

// ExtractMPITime reads the "MPI Time (seconds)" section. The aggregate row
// starts with the marker "*", which Tokenize leaves in the label; rows for a
// concrete rank start with the rank number.
func ExtractMPITime(text string) model.MPITimeStats {
	stats := model.MPITimeStats{TaskStats: []model.TimeStatRow{}}

	stats.Skipped = extractTable(text, mpiTimeSchema, func(row Row) bool {
		fields := row.Fields
		switch row.Label {
		case AggregateMarker:
			fields = append([]string{AggregateMarker}, fields...)
		case "":
		default:
			return false
		}

		task, ok := taskField(fields[0])
		if !ok {
			return false
		}
		appTime, ok1 := floatField(fields, 1)
		mpiTime, ok2 := floatField(fields, 2)
		mpiPct, ok3 := floatField(fields, 3)
		if !ok1 || !ok2 || !ok3 {
			return false
		}

		stats.TaskStats = append(stats.TaskStats, model.TimeStatRow{
			Task:          task,
			AppTime:       appTime,
			MPITime:       mpiTime,
			MPIPercentage: mpiPct,
		})
		return true
	})

	for i := range stats.TaskStats {
		if stats.TaskStats[i].Task.Aggregate {
			agg := stats.TaskStats[i]
			stats.Aggregate = &agg
			break
		}
	}
	return stats
}

// ExtractAggregateTime reads the "Aggregate Time" section in report order.
func ExtractAggregateTime(text string) model.AggregateTimeStats {
	stats := model.AggregateTimeStats{Operations: []model.AggregateOperation{}}

	stats.Skipped = extractTable(text, aggregateTimeSchema, func(row Row) bool {
		if row.Label == "" {
			return false
		}
		f := row.Fields
		site, ok1 := intField(f, 0)
		timeMS, ok2 := floatField(f, 1)
		appPct, ok3 := floatField(f, 2)
		mpiPct, ok4 := floatField(f, 3)
		count, ok5 := intField(f, 4)
		cov, ok6 := optionalFloatField(f, 5)
		if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 || !ok6 {
			return false
		}

		stats.Operations = append(stats.Operations, model.AggregateOperation{
			CallType:      row.Label,
			Site:          site,
			TimeMS:        timeMS,
			AppPercentage: appPct,
			MPIPercentage: mpiPct,
			Count:         count,
			COV:           cov,
		})
		return true
	})
	return stats
}

// ExtractMessageSize reads the "Aggregate Sent Message Size" section.
func ExtractMessageSize(text string) model.MessageSizeStats {
	stats := model.MessageSizeStats{Operations: []model.MessageSizeOperation{}}

	stats.Skipped = extractTable(text, messageSizeSchema, func(row Row) bool {
		if row.Label == "" {
			return false
		}
		f := row.Fields
		site, ok1 := intField(f, 0)
		count, ok2 := intField(f, 1)
		total, ok3 := floatField(f, 2)
		avg, ok4 := floatField(f, 3)
		sent, ok5 := optionalFloatField(f, 4)
		if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
			return false
		}

		stats.Operations = append(stats.Operations, model.MessageSizeOperation{
			CallType:       row.Label,
			Site:           site,
			Count:          count,
			TotalBytes:     total,
			AvgBytes:       avg,
			SentPercentage: sent,
		})
		return true
	})
	return stats
}

// ExtractCallsites reads the "Callsite Time statistics" section. The rank
// column uses "*" for the row that aggregates all ranks of a callsite.
func ExtractCallsites(text string) model.CallsiteStats {
	stats := model.CallsiteStats{Callsites: []model.CallsiteRecord{}}

	stats.Skipped = extractTable(text, callsiteTimeSchema, func(row Row) bool {
		if row.Label == "" {
			return false
		}
		f := row.Fields
		site, ok1 := intField(f, 0)
		rank, ok2 := taskField(f[1])
		count, ok3 := intField(f, 2)
		maxT, ok4 := floatField(f, 3)
		meanT, ok5 := floatField(f, 4)
		minT, ok6 := floatField(f, 5)
		appPct, ok7 := floatField(f, 6)
		mpiPct, ok8 := optionalFloatField(f, 7)
		if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 || !ok6 || !ok7 || !ok8 {
			return false
		}

		stats.Callsites = append(stats.Callsites, model.CallsiteRecord{
			Name:          row.Label,
			Site:          site,
			Rank:          rank,
			Count:         count,
			MaxTime:       maxT,
			MeanTime:      meanT,
			MinTime:       minT,
			AppPercentage: appPct,
			MPIPercentage: mpiPct,
		})
		return true
	})
	return stats
}
