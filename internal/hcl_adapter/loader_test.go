package hcl_adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/mpipgo/internal/mpip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRules(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	path := writeFile(t, dir, "rules.hcl", `
interface "opx" {
  match = concat(defaults.opx, ["psm2"])
}

interface "tcp" {
  match = [lower("TCP"), "sockets"]
}
`)

	// --- Act ---
	rules, err := NewLoader().LoadRules(context.Background(), path)

	// --- Assert ---
	require.NoError(t, err)
	expected := []mpip.InterfaceRule{
		{Interface: "opx", Match: []string{"opx", "omni", "psm2"}},
		{Interface: "tcp", Match: []string{"tcp", "sockets"}},
	}
	if diff := cmp.Diff(expected, rules); diff != "" {
		t.Errorf("LoadRules() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRules_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "b.hcl", `interface "tcp" { match = ["tcp"] }`)
	writeFile(t, dir, "a.hcl", `interface "ib" { match = ["mlx", "verbs"] }`)
	writeFile(t, dir, "notes.txt", `not a rules file`)

	rules, err := NewLoader().LoadRules(context.Background(), dir)

	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "ib", rules[0].Interface)
	assert.Equal(t, "tcp", rules[1].Interface)
}

func TestLoadRules_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
	}{
		{name: "Syntax error", content: `interface "tcp" { match = [ }`},
		{name: "Missing match", content: `interface "tcp" {}`},
		{name: "Not a list", content: `interface "tcp" { match = 42 }`},
		{name: "Unknown variable", content: `interface "tcp" { match = defaults.nope }`},
		{name: "Duplicate", content: "interface \"tcp\" { match = [\"a\"] }\ninterface \"tcp\" { match = [\"b\"] }"},
		{name: "Empty file", content: ``},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, t.TempDir(), "rules.hcl", tc.content)

			_, err := NewLoader().LoadRules(context.Background(), path)

			assert.Error(t, err)
		})
	}
}

func TestLoadRules_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().LoadRules(context.Background(), filepath.Join(t.TempDir(), "missing.hcl"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}
