package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/bomb/internal/config"
)

// newTestConfig returns a validated default configuration.
func newTestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.DefaultConfig()
	require.NoError(t, config.ValidateConfig(cfg))

	return cfg
}

// TestExecuteRootCommand tests stripping through the application entry point.
func TestExecuteRootCommand(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("\xEF\xBB\xBFhello"), 0o600))

	ok := ExecuteRootCommand(context.Background(), newTestConfig(t), []string{tempDir})
	assert.True(t, ok)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), content)
}

// TestExecuteDetectCommand tests the report format.
func TestExecuteDetectCommand(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	withBOM := filepath.Join(tempDir, "a.txt")
	withoutBOM := filepath.Join(tempDir, "b.txt")

	require.NoError(t, os.WriteFile(withBOM, []byte("\xFE\xFFx"), 0o600))
	require.NoError(t, os.WriteFile(withoutBOM, []byte("x"), 0o600))

	var out bytes.Buffer

	ok := ExecuteDetectCommand(context.Background(), newTestConfig(t), []string{withBOM, withoutBOM}, false, &out)
	assert.True(t, ok)
	assert.Equal(t, withBOM+": UTF-16BE\n", out.String())

	out.Reset()

	ok = ExecuteDetectCommand(context.Background(), newTestConfig(t), []string{withBOM, withoutBOM}, true, &out)
	assert.True(t, ok)
	assert.Equal(t, withBOM+": UTF-16BE\n"+withoutBOM+": none\n", out.String())
}

// TestExecuteInitCommand tests that a default configuration file is created and loadable.
func TestExecuteInitCommand(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bomb.yaml")

	ExecuteInitCommand(context.Background(), path)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, config.ValidateConfig(cfg))
	assert.Equal(t, config.DefaultConfig().IncludePatterns, cfg.IncludePatterns)
}
