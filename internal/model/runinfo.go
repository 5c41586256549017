// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines RunInfo, the header metadata of a report.
package model

import "sort"

// TaskAssignment maps one MPI rank to the node it ran on.
type TaskAssignment struct {
	Rank int    `json:"rank"`
	Node string `json:"node"`
}

// RunInfo holds the scalar header values of a report and the task
// assignment table. Header values missing from the report stay nil.
type RunInfo struct {
	Command        *string `json:"command,omitempty"`
	Version        *string `json:"version,omitempty"`
	BuildDate      *string `json:"build_date,omitempty"`
	StartTime      *string `json:"start_time,omitempty"`
	StopTime       *string `json:"stop_time,omitempty"`
	TimerUsed      *string `json:"timer_used,omitempty"`
	EnvVar         *string `json:"env_var,omitempty"`
	CollectorRank  *string `json:"collector_rank,omitempty"`
	FinalOutputDir *string `json:"final_output_dir,omitempty"`

	// BatchSize is read from a --batch-size flag in Command. It is nil when
	// the flag is missing.
	BatchSize *int `json:"batch_size"`

	TaskAssignments []TaskAssignment `json:"task_assignments"`
	NumProcesses    int              `json:"num_processes"`
	Nodes           []string         `json:"nodes"`
	NumNodes        int              `json:"num_nodes"`
}

// NewRunInfo builds a RunInfo from its task assignments and derives the
// process and node counts. Nodes are distinct and sorted.
func NewRunInfo(assignments []TaskAssignment) RunInfo {
	if assignments == nil {
		assignments = []TaskAssignment{}
	}

	seen := make(map[string]struct{}, len(assignments))
	nodes := make([]string, 0, len(assignments))
	for _, a := range assignments {
		if _, ok := seen[a.Node]; ok {
			continue
		}
		seen[a.Node] = struct{}{}
		nodes = append(nodes, a.Node)
	}
	sort.Strings(nodes)

	return RunInfo{
		TaskAssignments: assignments,
		NumProcesses:    len(assignments),
		Nodes:           nodes,
		NumNodes:        len(nodes),
	}
}

// EnvVarValue returns the MPIP environment variable line, or "".
func (r RunInfo) EnvVarValue() string {
	if r.EnvVar == nil {
		return ""
	}
	return *r.EnvVar
}
