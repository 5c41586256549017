package dump

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/mpipgo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func sampleRecords() []*model.ParsedRecord {
	bs := 32
	rec := &model.ParsedRecord{Filename: "run.txt", Path: "/data/run.txt", InterfaceType: "opx"}
	rec.RunInfo.BatchSize = &bs
	rec.RunInfo.NumNodes = 2
	return []*model.ParsedRecord{rec}
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	var buf bytes.Buffer

	// --- Act ---
	err := WriteJSON(&buf, sampleRecords())

	// --- Assert ---
	require.NoError(t, err)
	var out []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "opx", out[0]["interface_type"])
	assert.Equal(t, "/data/run.txt", out[0]["filepath"])
	assert.Contains(t, buf.String(), "\n  {")
}

func TestWriteJSON_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteMsgpack(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteMsgpack(&buf, sampleRecords()))

	var out []map[string]any
	require.NoError(t, msgpack.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "run.txt", out[0]["filename"])
	runInfo, ok := out[0]["run_info"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 32, runInfo["batch_size"])
}

func TestToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, ToFile(path, sampleRecords(), WriteJSON))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"filename": "run.txt"`)

	err = ToFile(filepath.Join(t.TempDir(), "missing", "out.json"), nil, WriteJSON)
	assert.Error(t, err)
}
