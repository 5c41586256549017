package mpip

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/specialistvlad/mpipgo/internal/model"
)

// Header keys as they appear after "@ " in the report preamble.
const (
	keyCommand        = "Command"
	keyVersion        = "Version"
	keyBuildDate      = "MPIP Build date"
	keyStartTime      = "Start time"
	keyStopTime       = "Stop time"
	keyTimerUsed      = "Timer Used"
	keyEnvVar         = "MPIP env var"
	keyCollectorRank  = "Collector Rank"
	keyFinalOutputDir = "Final Output Dir"
	keyTaskAssignment = "MPI Task Assignment"
)

var (
	batchSizeRe      = regexp.MustCompile(`--batch-size(?:\s+|=)([+-]?[0-9]+)(?:\s|$)`)
	taskAssignmentRe = regexp.MustCompile(`^([0-9]+)\s+(\S+)`)
)

// headerValue splits an "@ Key : value" line. It returns ok=false for any
// other line.
func headerValue(line string) (key, value string, ok bool) {
	line = strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(line, "@ ") {
		return "", "", false
	}
	key, value, found := strings.Cut(line[2:], ":")
	if !found {
		return "", "", false
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), true
}

// ExtractRunInfo reads the report preamble. Every scalar key takes the value
// of its first occurrence; keys that never occur, or occur with an empty
// value, stay nil. Task assignments are collected in document order.
func ExtractRunInfo(text string) model.RunInfo {
	fields := make(map[string]string)
	var assignments []model.TaskAssignment

	for _, line := range splitLines(text) {
		key, value, ok := headerValue(line)
		if !ok {
			continue
		}

		if key == keyTaskAssignment {
			m := taskAssignmentRe.FindStringSubmatch(value)
			if m == nil {
				continue
			}
			rank, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			assignments = append(assignments, model.TaskAssignment{Rank: rank, Node: m[2]})
			continue
		}

		if value == "" {
			continue
		}
		if _, seen := fields[key]; !seen {
			fields[key] = value
		}
	}

	info := model.NewRunInfo(assignments)
	info.Command = lookup(fields, keyCommand)
	info.Version = lookup(fields, keyVersion)
	info.BuildDate = lookup(fields, keyBuildDate)
	info.StartTime = lookup(fields, keyStartTime)
	info.StopTime = lookup(fields, keyStopTime)
	info.TimerUsed = lookup(fields, keyTimerUsed)
	info.EnvVar = lookup(fields, keyEnvVar)
	info.CollectorRank = lookup(fields, keyCollectorRank)
	info.FinalOutputDir = lookup(fields, keyFinalOutputDir)

	if info.Command != nil {
		info.BatchSize = ParseBatchSize(*info.Command)
	}
	return info
}

// ParseBatchSize finds a "--batch-size N" flag in a command line. It returns
// nil when the flag is missing or its value is not an integer.
func ParseBatchSize(command string) *int {
	m := batchSizeRe.FindStringSubmatch(command)
	if m == nil {
		return nil
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &v
}

func lookup(fields map[string]string, key string) *string {
	v, ok := fields[key]
	if !ok {
		return nil
	}
	return &v
}
