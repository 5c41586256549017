// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines TaskID, the rank-or-aggregate value used by the MPI Time
// and Callsite sections.
//
// Why not an int with a magic value?
//
// mpiP marks the row that summarizes all ranks with "*". Encoding that as -1
// or as the string "aggregate" inside an untyped field makes it easy to mix
// the sentinel up with a real rank. TaskID keeps the two cases apart at the
// type level while still serializing to the shape existing consumers read:
// an integer rank, or the string "aggregate".
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// AggregateLabel is the serialized form of the aggregate sentinel.
const AggregateLabel = "aggregate"

// TaskID is either a non-negative MPI rank or the aggregate sentinel.
type TaskID struct {
	Rank      int
	Aggregate bool
}

// Rank returns a TaskID for a concrete rank.
func Rank(r int) TaskID {
	return TaskID{Rank: r}
}

// AggregateTask returns the aggregate sentinel.
func AggregateTask() TaskID {
	return TaskID{Aggregate: true}
}

// String implements fmt.Stringer.
func (t TaskID) String() string {
	if t.Aggregate {
		return AggregateLabel
	}
	return strconv.Itoa(t.Rank)
}

// MarshalJSON writes the rank as a number, or the sentinel as "aggregate".
func (t TaskID) MarshalJSON() ([]byte, error) {
	if t.Aggregate {
		return json.Marshal(AggregateLabel)
	}
	return []byte(strconv.Itoa(t.Rank)), nil
}

// UnmarshalJSON accepts the forms produced by MarshalJSON.
func (t *TaskID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s != AggregateLabel {
			return fmt.Errorf("invalid task id %q", s)
		}
		*t = AggregateTask()
		return nil
	}

	var r int
	if err := json.Unmarshal(data, &r); err != nil {
		return fmt.Errorf("invalid task id %s: %w", data, err)
	}
	*t = Rank(r)
	return nil
}
