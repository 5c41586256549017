package system

import (
	"context"
	"testing"

	"github.com/specialistvlad/mpipgo/internal/app"
	"github.com/specialistvlad/mpipgo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test for: a rejected upload is reported and its siblings are still stored.
func TestUploadFailure_ContinuesWithSiblings(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	report := testutil.Report(testutil.ReportOptions{BatchSize: 4, EnvVar: "tcp", Nodes: []string{"n1"}, MPIPercent: 2})
	files := map[string]string{"a.txt": report, "b.txt": report, "c.txt": report}
	st := testutil.NewMemoryStore("b.txt")

	// --- Act ---
	result := testutil.RunApp(t, files, app.Config{CredentialsPath: "unused.yaml"}, app.WithStore(st))

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.ElementsMatch(t, []string{"a.txt", "c.txt"}, st.Filenames())
	assert.Contains(t, result.Output, "Failed to upload record.")
	assert.Contains(t, result.Output, "Failed uploads: b.txt")
}

// Test for: garbage input degrades to an empty record instead of an error.
func TestGarbageReport_IsParsedAsEmpty(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"garbage.txt": "\x00\x01 binary junk \xff\xfe\n@--- MPI Time (seconds) ---\n*  abc def\n",
	}

	result := testutil.RunApp(t, files, app.Config{DryRun: true})

	require.NoError(t, result.Err)
	assert.Contains(t, result.Output, "Interface: unknown, Nodes: 0, MPI%: N/A")
	assert.Contains(t, result.Output, "Total experiments: 1")
}

// Test for: a cancelled run reports every document as failed without panicking.
func TestCancelledContext_ReportsFailures(t *testing.T) {
	t.Parallel()

	report := testutil.Report(testutil.ReportOptions{EnvVar: "tcp", Nodes: []string{"n1"}, MPIPercent: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := testutil.RunAppWithContext(ctx, t, map[string]string{"a.txt": report, "b.txt": report}, app.Config{DryRun: true})

	require.NoError(t, result.Err)
	assert.Contains(t, result.Output, "Total experiments: 0")
	assert.Contains(t, result.Output, "Failed to parse: 2")
}

// Test for: an unreachable store fails the run after parsing.
func TestMissingCredentials_FailsRun(t *testing.T) {
	t.Parallel()

	report := testutil.Report(testutil.ReportOptions{EnvVar: "tcp", Nodes: []string{"n1"}, MPIPercent: 1})

	result := testutil.RunApp(t, map[string]string{"a.txt": report}, app.Config{CredentialsPath: "/nonexistent/creds.yaml"})

	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "failed to open store")
	assert.Contains(t, result.Output, "Total experiments: 1")
	assert.Contains(t, result.Output, "Upload failed:")
}
