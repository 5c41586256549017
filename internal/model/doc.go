// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model defines the typed representation of a single mpiP profiling
// run. Its core purpose is to give every value pulled out of a free-form
// report a concrete Go type, so that the parser, the summary, the dump
// writers and the persistence layer all agree on one shape.
//
// # Core Concepts
//
//   - Document: the raw report text together with the path it was read from.
//     It is the only input to the parser.
//
//   - RunInfo: the "@ Key : value" header of the report plus the rank to
//     node task assignment table.
//
//   - Table stats: one result type per report section (MPI Time, Aggregate
//     Time, Aggregate Sent Message Size, Callsite Time statistics). Each
//     carries a Skipped counter of rows that could not be read.
//
//   - TaskID: a rank number or the aggregate sentinel written by mpiP as "*".
//
//   - ParsedRecord: the root entity, assembled once per document.
//
// Optional values are pointers. A nil pointer means the report did not
// contain the value, which is different from a reported zero.
package model
