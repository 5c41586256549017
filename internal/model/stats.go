// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the per-section result types. Every section result has a
// Skipped counter: the number of rows inside the section that were dropped
// because they did not have enough numeric columns or a column could not be
// coerced to its expected type. A missing section yields empty, non-nil
// row slices so that it serializes as an empty list.
package model

// TimeStatRow is one row of the "MPI Time (seconds)" section.
type TimeStatRow struct {
	Task          TaskID  `json:"task"`
	AppTime       float64 `json:"app_time"`
	MPITime       float64 `json:"mpi_time"`
	MPIPercentage float64 `json:"mpi_percentage"`
}

// MPITimeStats is the parsed "MPI Time (seconds)" section. Aggregate points
// at the row whose task is the aggregate sentinel, if there is one.
type MPITimeStats struct {
	TaskStats []TimeStatRow `json:"task_stats"`
	Aggregate *TimeStatRow  `json:"aggregate,omitempty"`
	Skipped   int           `json:"skipped_rows"`
}

// AggregateOperation is one row of the "Aggregate Time" section.
type AggregateOperation struct {
	CallType      string   `json:"call_type"`
	Site          int      `json:"site"`
	TimeMS        float64  `json:"time_ms"`
	AppPercentage float64  `json:"app_percentage"`
	MPIPercentage float64  `json:"mpi_percentage"`
	Count         int      `json:"count"`
	COV           *float64 `json:"cov,omitempty"`
}

// AggregateTimeStats is the parsed "Aggregate Time" section. Operations keep
// the order in which mpiP reported them.
type AggregateTimeStats struct {
	Operations []AggregateOperation `json:"operations"`
	Skipped    int                  `json:"skipped_rows"`
}

// MessageSizeOperation is one row of the "Aggregate Sent Message Size"
// section.
type MessageSizeOperation struct {
	CallType       string   `json:"call_type"`
	Site           int      `json:"site"`
	Count          int      `json:"count"`
	TotalBytes     float64  `json:"total_bytes"`
	AvgBytes       float64  `json:"avg_bytes"`
	SentPercentage *float64 `json:"sent_percentage,omitempty"`
}

// MessageSizeStats is the parsed "Aggregate Sent Message Size" section.
type MessageSizeStats struct {
	Operations []MessageSizeOperation `json:"operations"`
	Skipped    int                    `json:"skipped_rows"`
}

// CallsiteRecord is one row of the "Callsite Time statistics" section.
type CallsiteRecord struct {
	Name          string   `json:"name"`
	Site          int      `json:"site"`
	Rank          TaskID   `json:"rank"`
	Count         int      `json:"count"`
	MaxTime       float64  `json:"max_time"`
	MeanTime      float64  `json:"mean_time"`
	MinTime       float64  `json:"min_time"`
	AppPercentage float64  `json:"app_percentage"`
	MPIPercentage *float64 `json:"mpi_percentage,omitempty"`
}

// CallsiteStats is the parsed "Callsite Time statistics" section.
type CallsiteStats struct {
	Callsites []CallsiteRecord `json:"callsites"`
	Skipped   int              `json:"skipped_rows"`
}
