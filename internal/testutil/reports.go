package testutil

import (
	"fmt"
	"strings"
)

const rule = "---------------------------------------------------------------------------"

// ReportOptions describes a synthetic mpiP report.
type ReportOptions struct {
	BatchSize int // 0 omits --batch-size from the command line
	EnvVar    string
	Nodes     []string // one entry per rank
	// MPIPercent is the aggregate MPI% of the run; negative omits the
	// MPI Time section.
	MPIPercent float64
}

// Report renders s as report text with an MPI Time section and a small
// aggregate time table.
func Report(s ReportOptions) string {
	var b strings.Builder

	cmd := "./bench"
	if s.BatchSize > 0 {
		cmd = fmt.Sprintf("./bench --batch-size %d", s.BatchSize)
	}
	fmt.Fprintln(&b, "@ mpiP")
	fmt.Fprintf(&b, "@ Command : %s\n", cmd)
	fmt.Fprintln(&b, "@ Version : 3.5.0")
	if s.EnvVar != "" {
		fmt.Fprintf(&b, "@ MPIP env var : %s\n", s.EnvVar)
	}
	for rank, node := range s.Nodes {
		fmt.Fprintf(&b, "@ MPI Task Assignment : %d %s\n", rank, node)
	}
	fmt.Fprintln(&b)

	if s.MPIPercent >= 0 {
		fmt.Fprintln(&b, rule)
		fmt.Fprintln(&b, "@--- MPI Time (seconds) ---------------------------------------------------")
		fmt.Fprintln(&b, rule)
		fmt.Fprintln(&b, "Task    AppTime    MPITime     MPI%")
		for rank := range s.Nodes {
			fmt.Fprintf(&b, "%4d %10.1f %10.2f %8.2f\n", rank, 100.0, s.MPIPercent, s.MPIPercent)
		}
		n := float64(len(s.Nodes))
		fmt.Fprintf(&b, "   * %10.1f %10.2f %8.2f\n", 100*n, s.MPIPercent*n, s.MPIPercent)
		fmt.Fprintln(&b, rule)
	}

	fmt.Fprintln(&b, "@--- Aggregate Time (top twenty, descending, milliseconds) ---------------")
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "Call                 Site       Time    App%    MPI%      Count    COV")
	fmt.Fprintln(&b, "Allreduce               1   1.23e+03    1.20   15.40         40   0.12")
	fmt.Fprintln(&b, "Barrier                 2        456    0.44    5.71         10   0.00")
	fmt.Fprintln(&b, rule)
	return b.String()
}
