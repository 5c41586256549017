package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestFindReports_Directory(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "x")
	writeFile(t, filepath.Join(root, "nested", "deep", "b.out"), "x")
	writeFile(t, filepath.Join(root, "nested", "c.log"), "x")
	writeFile(t, filepath.Join(root, "noext"), "x")
	writeFile(t, filepath.Join(root, "run.4.mpiP"), "x")
	writeFile(t, filepath.Join(root, "empty.txt"), "")
	writeFile(t, filepath.Join(root, "image.png"), "x")

	// --- Act ---
	files, err := FindReports(root, DefaultReportExtensions)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.txt"),
		filepath.Join(root, "nested", "c.log"),
		filepath.Join(root, "nested", "deep", "b.out"),
		filepath.Join(root, "noext"),
		filepath.Join(root, "run.4.mpiP"),
	}, files)
}

func TestFindReports_SingleFileIsUnfiltered(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.dat")
	writeFile(t, path, "x")

	files, err := FindReports(path, DefaultReportExtensions)

	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestFindReports_Errors(t *testing.T) {
	t.Parallel()

	_, err := FindReports(filepath.Join(t.TempDir(), "missing"), DefaultReportExtensions)
	assert.ErrorIs(t, err, os.ErrNotExist)

	empty := t.TempDir()
	writeFile(t, filepath.Join(empty, "skip.png"), "x")
	_, err = FindReports(empty, DefaultReportExtensions)
	assert.ErrorIs(t, err, ErrNoReports)
}
