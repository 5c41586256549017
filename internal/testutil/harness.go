// Package testutil provides a harness for end-to-end tests of the app.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/mpipgo/internal/app"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an end-to-end run.
type HarnessResult struct {
	Output string
	Err    error
	Dir    string
}

// WriteFiles writes files, keyed by path relative to a fresh temporary
// directory, and returns that directory.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// RunApp writes files into a temporary input directory and runs the app
// over it with a background context.
func RunApp(t *testing.T, files map[string]string, cfg app.Config, opts ...app.Option) *HarnessResult {
	t.Helper()
	return RunAppWithContext(context.Background(), t, files, cfg, opts...)
}

// RunAppWithContext is RunApp with a caller supplied context. cfg.InputPath
// is overwritten with the temporary directory.
func RunAppWithContext(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config, opts ...app.Option) *HarnessResult {
	t.Helper()

	dir := WriteFiles(t, files)
	cfg.InputPath = dir
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out := &SafeBuffer{}
	t.Cleanup(func() {
		if os.Getenv("MPIPGO_TEST_LOGS") == "true" {
			t.Logf("--- Full Output for %s ---\n%s", t.Name(), out.String())
		}
	})

	var runErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				runErr = fmt.Errorf("application startup panicked | %v", r)
			}
		}()
		runErr = app.NewApp(out, appConfig, opts...).Run(ctx)
	}()

	return &HarnessResult{Output: out.String(), Err: runErr, Dir: dir}
}
