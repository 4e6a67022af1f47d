package stripper

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/bomb/internal/config"
	"github.com/oshokin/bomb/internal/constants"
	"github.com/oshokin/bomb/internal/storage"
)

// fakeFileInfo is a minimal os.FileInfo for mocked Stat calls.
type fakeFileInfo struct {
	name string
	size int64
	mode os.FileMode
}

func (fi fakeFileInfo) Name() string       { return fi.name }
func (fi fakeFileInfo) Size() int64        { return fi.size }
func (fi fakeFileInfo) Mode() os.FileMode  { return fi.mode }
func (fi fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (fi fakeFileInfo) IsDir() bool        { return fi.mode.IsDir() }
func (fi fakeFileInfo) Sys() any           { return nil }

// newTestConfig returns a validated configuration with optional overrides.
func newTestConfig(t *testing.T, overrides ...func(*config.Config)) *config.Config {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.MaxConcurrentFiles = 1

	for _, override := range overrides {
		override(cfg)
	}

	require.NoError(t, config.ValidateConfig(cfg))

	return cfg
}

// newTestService creates a service backed by the local disk.
func newTestService(t *testing.T, overrides ...func(*config.Config)) (*ServiceImpl, *config.Config) {
	t.Helper()

	cfg := newTestConfig(t, overrides...)
	service := NewService(cfg, storage.NewOSFileSystem(), NewPathResolver(cfg.IncludePatterns, cfg.ExcludePatterns))

	impl, ok := service.(*ServiceImpl)
	require.True(t, ok, "Service should be of type *ServiceImpl")

	return impl, cfg
}

// writeTestFile creates a file with the given raw content, creating parent folders.
func writeTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), constants.DefaultFolderPermissions))
	require.NoError(t, os.WriteFile(path, content, constants.DefaultFilePermissions))
}

// readTestFile reads a file and fails the test on error.
func readTestFile(t *testing.T, path string) []byte {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	return content
}
