package system

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/mpipgo/internal/app"
	"github.com/specialistvlad/mpipgo/internal/store"
	"github.com/specialistvlad/mpipgo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test for: many documents parsed by many workers come back in input order.
func TestBatch_PreservesInputOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := make(map[string]string)
	var expected []string
	for i := 0; i < 40; i++ {
		name := fmt.Sprintf("run_%03d.txt", i)
		expected = append(expected, name)
		files[name] = testutil.Report(testutil.ReportOptions{
			BatchSize:  1 << (i % 6),
			EnvVar:     "mpip_tcp",
			Nodes:      []string{"n1", "n2"},
			MPIPercent: float64(i),
		})
	}
	jsonPath := filepath.Join(t.TempDir(), "out.json")

	// --- Act ---
	result := testutil.RunApp(t, files, app.Config{DryRun: true, WorkerCount: 8, OutputJSON: jsonPath})

	// --- Assert ---
	require.NoError(t, result.Err)
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)

	var records []struct {
		Filename string `json:"filename"`
		Summary  struct {
			TotalMPIPercentage *float64 `json:"total_mpi_percentage"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, len(expected))
	for i, rec := range records {
		assert.Equal(t, expected[i], rec.Filename)
		require.NotNil(t, rec.Summary.TotalMPIPercentage)
		assert.InDelta(t, float64(i), *rec.Summary.TotalMPIPercentage, 1e-9)
	}
}

// Test for: uploads are grouped into collections by the chosen partition.
func TestBatch_UploadPartitions(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"a.txt": testutil.Report(testutil.ReportOptions{BatchSize: 32, EnvVar: "tcp", Nodes: []string{"n1"}, MPIPercent: 1}),
		"b.txt": testutil.Report(testutil.ReportOptions{BatchSize: 32, EnvVar: "tcp", Nodes: []string{"n1", "n2"}, MPIPercent: 1}),
		"c.txt": testutil.Report(testutil.ReportOptions{EnvVar: "omnipath", Nodes: []string{"n1", "n2"}, MPIPercent: 1}),
	}

	testCases := []struct {
		name      string
		partition store.Partition
		expected  map[string]int
	}{
		{
			name:      "By batch size",
			partition: store.PartitionBatchSize,
			expected:  map[string]int{"experiments/tcp/32_batch": 2, "experiments/opx/no_batch": 1},
		},
		{
			name:      "By node count",
			partition: store.PartitionNumNodes,
			expected:  map[string]int{"experiments/tcp/1_nodes": 1, "experiments/tcp/2_nodes": 1, "experiments/opx/2_nodes": 1},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			st := testutil.NewMemoryStore()

			result := testutil.RunApp(t, files, app.Config{CredentialsPath: "unused.yaml", Partition: tc.partition}, app.WithStore(st))

			require.NoError(t, result.Err)
			assert.Equal(t, tc.expected, st.Collections())
			assert.True(t, st.Closed())
		})
	}
}
