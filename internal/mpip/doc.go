// Package mpip is the report parsing engine. It turns the text written by
// the mpiP MPI profiler into a model.ParsedRecord.
//
// The report format has no strict grammar. Sections are opened by an
// "@--- Title ---" marker line and closed by a rule of dashes, and each row
// inside a section is a variable-width label followed by numeric columns,
// with no quoting or delimiters. The engine is therefore split into small,
// independently testable pieces:
//
//   - Coerce classifies a single token as an integer, a float or neither.
//   - Tokenize splits a row into its label and its numeric tail.
//   - LocateSection cuts the text of one section out of the report.
//   - The Extract* functions map rows of one section to typed records.
//   - Classifier picks the network interface label of the run.
//   - Summarize derives the per-run rollup.
//   - Parser runs all of the above against one Document.
//
// Rows that cannot be read are skipped and counted, never reported as
// errors. A missing section is not an error either: its result is the zero
// value.
package mpip
