// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Summary and ParsedRecord.
//
// Why is Summary stored next to the raw tables?
//
// The summary duplicates information already present in the section results.
// It exists so that consumers of the persisted record (dashboards, ad-hoc
// queries) can read the headline numbers of a run without walking the
// tables. It is derived, never authoritative.
package model

import (
	"encoding/json"
	"time"
)

// TopOperationsLimit is the number of aggregate operations copied into
// Summary.TopOperations.
const TopOperationsLimit = 5

// Summary is the per-run rollup computed from RunInfo and the time tables.
type Summary struct {
	NumProcesses int  `json:"num_processes"`
	NumNodes     int  `json:"num_nodes"`
	BatchSize    *int `json:"batch_size"`

	TotalMPIPercentage *float64 `json:"total_mpi_percentage,omitempty"`
	TotalAppTime       *float64 `json:"total_app_time,omitempty"`
	TotalMPITime       *float64 `json:"total_mpi_time,omitempty"`

	TopOperations   []AggregateOperation `json:"top_operations,omitempty"`
	OperationCounts map[string]int       `json:"operation_counts,omitempty"`
	OperationTimes  map[string]float64   `json:"operation_times,omitempty"`
}

// ParsedRecord is everything extracted from one report.
type ParsedRecord struct {
	Filename      string `json:"filename"`
	Path          string `json:"filepath"`
	InterfaceType string `json:"interface_type"`

	RunInfo            RunInfo            `json:"run_info"`
	MPITimeStats       MPITimeStats       `json:"mpi_time_stats"`
	AggregateTimeStats AggregateTimeStats `json:"aggregate_time_stats"`
	MessageSizeStats   MessageSizeStats   `json:"message_size_stats"`
	CallsiteStats      CallsiteStats      `json:"callsite_stats"`

	Summary          Summary   `json:"summary"`
	ParsingTimestamp time.Time `json:"parsing_timestamp"`
}

// SkippedRows returns the total of the per-section skipped row counters.
func (r *ParsedRecord) SkippedRows() int {
	return r.MPITimeStats.Skipped +
		r.AggregateTimeStats.Skipped +
		r.MessageSizeStats.Skipped +
		r.CallsiteStats.Skipped
}

// Tree converts the record into nested maps, slices and scalars, the
// format-neutral shape handed to serializers that do not understand the
// JSON tags.
func (r *ParsedRecord) Tree() (map[string]any, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var tree map[string]any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}
