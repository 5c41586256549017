package mpip

import "github.com/specialistvlad/mpipgo/internal/model"

// Summarize derives the per-run rollup. MPI totals are copied from the
// aggregate row of the MPI Time section and stay nil without it. Top
// operations are the first entries of the Aggregate Time section in report
// order; they are not re-sorted here. Counts and times are keyed by the
// exact call type string.
func Summarize(run model.RunInfo, mpiTime model.MPITimeStats, aggTime model.AggregateTimeStats) model.Summary {
	s := model.Summary{
		NumProcesses: run.NumProcesses,
		NumNodes:     run.NumNodes,
		BatchSize:    run.BatchSize,
	}

	if agg := mpiTime.Aggregate; agg != nil {
		pct, app, mpi := agg.MPIPercentage, agg.AppTime, agg.MPITime
		s.TotalMPIPercentage = &pct
		s.TotalAppTime = &app
		s.TotalMPITime = &mpi
	}

	ops := aggTime.Operations
	if len(ops) == 0 {
		return s
	}

	n := min(len(ops), model.TopOperationsLimit)
	s.TopOperations = append([]model.AggregateOperation(nil), ops[:n]...)

	s.OperationCounts = make(map[string]int)
	s.OperationTimes = make(map[string]float64)
	for _, op := range ops {
		s.OperationCounts[op.CallType]++
		s.OperationTimes[op.CallType] += op.TimeMS
	}
	return s
}
