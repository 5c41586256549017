package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/specialistvlad/mpipgo/internal/ctxlog"
	"github.com/specialistvlad/mpipgo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore is an in-memory Store that fails for selected filenames.
type memoryStore struct {
	mu       sync.Mutex
	saved    map[string]*model.ParsedRecord
	failing  map[string]bool
	deadline bool
}

func newMemoryStore(failing ...string) *memoryStore {
	m := &memoryStore{saved: map[string]*model.ParsedRecord{}, failing: map[string]bool{}}
	for _, f := range failing {
		m.failing[f] = true
	}
	return m
}

func (m *memoryStore) Save(ctx context.Context, loc Location, rec *model.ParsedRecord) error {
	if _, ok := ctx.Deadline(); ok {
		m.mu.Lock()
		m.deadline = true
		m.mu.Unlock()
	}
	if m.failing[rec.Filename] {
		return errors.New("permission denied")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved[loc.String()] = rec
	return nil
}

func (m *memoryStore) Close() error { return nil }

func record(filename, iface string, batch *int, nodes int) *model.ParsedRecord {
	rec := &model.ParsedRecord{Filename: filename, InterfaceType: iface}
	rec.RunInfo.BatchSize = batch
	rec.RunInfo.NumNodes = nodes
	return rec
}

func intPtr(v int) *int { return &v }

func TestCollectionFor(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		rec       *model.ParsedRecord
		partition Partition
		expected  string
	}{
		{name: "Batch size", rec: record("a", "tcp", intPtr(64), 2), partition: PartitionBatchSize, expected: "experiments/tcp/64_batch"},
		{name: "Missing batch size", rec: record("a", "opx", nil, 2), partition: PartitionBatchSize, expected: "experiments/opx/no_batch"},
		{name: "Node count", rec: record("a", "tcp", intPtr(64), 4), partition: PartitionNumNodes, expected: "experiments/tcp/4_nodes"},
		{name: "Empty interface", rec: record("a", "", nil, 1), partition: PartitionNumNodes, expected: "experiments/unknown/1_nodes"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, CollectionFor(tc.rec, tc.partition))
		})
	}
}

func TestNewLocation_UniqueIDs(t *testing.T) {
	t.Parallel()

	rec := record("a", "tcp", intPtr(8), 1)
	a := NewLocation(rec, PartitionBatchSize)
	b := NewLocation(rec, PartitionBatchSize)

	assert.NotEqual(t, a.ID, b.ID)
	assert.True(t, strings.HasPrefix(a.ID, "experiment_"))
	assert.Equal(t, "experiments/tcp/8_batch/"+a.ID, a.String())
}

func TestParsePartition(t *testing.T) {
	t.Parallel()

	p, err := ParsePartition("")
	require.NoError(t, err)
	assert.Equal(t, PartitionBatchSize, p)

	p, err = ParsePartition("NUM_NODES")
	require.NoError(t, err)
	assert.Equal(t, PartitionNumNodes, p)

	_, err = ParsePartition("by_day")
	assert.Error(t, err)
}

func TestUploader_ContinuesOnError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	st := newMemoryStore("b.txt")
	up := NewUploader(st, PartitionBatchSize, WithConcurrency(2), WithTimeout(time.Second))
	records := []*model.ParsedRecord{
		record("a.txt", "tcp", intPtr(8), 1),
		record("b.txt", "tcp", intPtr(8), 1),
		record("c.txt", "opx", nil, 2),
	}

	// --- Act ---
	report := up.UploadAll(ctxlog.Discard(context.Background()), records)

	// --- Assert ---
	assert.Equal(t, []string{"b.txt"}, report.Failed)
	require.Len(t, report.Stored, 2)
	assert.Equal(t, "experiments/tcp/8_batch", report.Stored[0].Collection)
	assert.Equal(t, "experiments/opx/no_batch", report.Stored[1].Collection)
	assert.Len(t, st.saved, 2)
	assert.True(t, st.deadline, "Every save must run under a timeout")
}

func TestNewRecordRow(t *testing.T) {
	t.Parallel()

	rec := record("a.txt", "tcp", intPtr(16), 3)
	pct := 12.5
	rec.Summary.TotalMPIPercentage = &pct
	loc := Location{Collection: "experiments/tcp/16_batch", ID: "experiment_x"}

	row, err := NewRecordRow(loc, rec)

	require.NoError(t, err)
	assert.Equal(t, "experiment_x", row.ID)
	assert.Equal(t, 3, row.NumNodes)
	require.NotNil(t, row.BatchSize)
	assert.Equal(t, 16, *row.BatchSize)
	assert.Equal(t, "experiment_records", row.TableName())

	var back model.ParsedRecord
	require.NoError(t, json.Unmarshal([]byte(row.Payload), &back))
	assert.Equal(t, "a.txt", back.Filename)
}

func TestLoadCredentials(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	good := filepath.Join(dir, "creds.yaml")
	require.NoError(t, os.WriteFile(good, []byte(`
database:
  host: db.local
  user: mpip
  password: s3cret
  dbname: experiments
`), 0o600))
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("database:\n  host: db.local\n"), 0o600))

	// --- Act ---
	creds, err := LoadCredentials(good)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, 3306, creds.Database.Port)
	assert.Equal(t, "mpip:s3cret@tcp(db.local:3306)/experiments?charset=utf8mb4&parseTime=True&loc=Local", creds.Database.DSN())

	_, err = LoadCredentials(bad)
	assert.Error(t, err)

	_, err = LoadCredentials("")
	assert.ErrorIs(t, err, ErrNoCredentials)

	_, err = LoadCredentials(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
