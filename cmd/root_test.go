package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/bomb/internal/config"
	"github.com/oshokin/bomb/internal/constants"
)

const testBaseConfigContent = `
log_level: "info"
output_path: "/config/output"
dry_run: false
max_concurrent_files: 2
max_file_size: "1MB"
include_patterns:
  - "**/*.txt"
exclude_patterns:
  - "vendor/**"
watch_debounce: "100ms"
`

// newTestCommand creates a command with the same flags as the root command.
func newTestCommand() *cobra.Command {
	testCmd := &cobra.Command{
		Use: "test",
	}

	testCmd.Flags().String("log-level", "", "logging level")
	testCmd.Flags().Int64P("concurrency", "j", 0, "number of files processed simultaneously")
	testCmd.Flags().StringSliceP("include", "i", nil, "include patterns")
	testCmd.Flags().StringSliceP("exclude", "x", nil, "exclude patterns")
	testCmd.Flags().StringP("output", "o", "", "output directory")
	testCmd.Flags().BoolP("dry-run", "n", false, "dry run")

	return testCmd
}

// loadTestConfig writes the base configuration to a temp file and loads it.
func loadTestConfig(t *testing.T) *config.Config {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "test-config.yaml")

	err := os.WriteFile(
		configPath,
		[]byte(testBaseConfigContent),
		constants.DefaultFilePermissions,
	) //nolint:gosec // It's a test file.
	require.NoError(t, err)

	cfg, err := config.LoadConfig(configPath)
	require.NoError(t, err)

	return cfg
}

// TestFlagOverrides tests that command-line flags correctly override configuration file values.
//
//nolint:funlen // It's a comprehensive integration test.
func TestFlagOverrides(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		flags          map[string]string
		expectedConfig func(*testing.T, *config.Config)
	}{
		{
			name:  "no flags - use config values",
			flags: map[string]string{},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "/config/output", cfg.OutputPath)
				assert.False(t, cfg.DryRun)
				assert.Equal(t, int64(2), cfg.MaxConcurrentFiles)
				assert.Equal(t, []string{"**/*.txt"}, cfg.IncludePatterns)
				assert.Equal(t, []string{"vendor/**"}, cfg.ExcludePatterns)
				assert.Equal(t, int64(1_000_000), cfg.ParsedMaxFileSize)
			},
		},
		{
			name: "output flag only - override output path",
			flags: map[string]string{
				"output": "/flag/output",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "/flag/output", cfg.OutputPath)
				assert.False(t, cfg.DryRun)
				assert.Equal(t, int64(2), cfg.MaxConcurrentFiles)
			},
		},
		{
			name: "dry-run flag only",
			flags: map[string]string{
				"dry-run": "true",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "/config/output", cfg.OutputPath)
				assert.True(t, cfg.DryRun)
			},
		},
		{
			name: "concurrency flag only",
			flags: map[string]string{
				"concurrency": "8",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, int64(8), cfg.MaxConcurrentFiles)
			},
		},
		{
			name: "include and exclude flags replace config patterns",
			flags: map[string]string{
				"include": "**/*.csv,**/*.tsv",
				"exclude": "build/**",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, []string{"**/*.csv", "**/*.tsv"}, cfg.IncludePatterns)
				assert.Equal(t, []string{"build/**"}, cfg.ExcludePatterns)
			},
		},
		{
			name: "log level flag",
			flags: map[string]string{
				"log-level": "debug",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "debug", cfg.LogLevel)
				assert.Equal(t, "debug", cfg.ParsedLogLevel.String())
			},
		},
		{
			name: "all flags",
			flags: map[string]string{
				"output":      "/all/flags",
				"dry-run":     "true",
				"concurrency": "1",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "/all/flags", cfg.OutputPath)
				assert.True(t, cfg.DryRun)
				assert.Equal(t, int64(1), cfg.MaxConcurrentFiles)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := loadTestConfig(t)
			testCmd := newTestCommand()

			for flagName, flagValue := range tt.flags {
				require.NoError(t, testCmd.Flags().Set(flagName, flagValue), "failed to set flag %s", flagName)
			}

			err := bindFlagsToConfig(testCmd.Flags(), cfg)
			require.NoError(t, err)

			tt.expectedConfig(t, cfg)
		})
	}
}

// TestFlagOverrides_InvalidValues tests that invalid flag values are rejected.
func TestFlagOverrides_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		flagName    string
		flagValue   string
		expectedErr error
	}{
		{
			name:        "zero concurrency",
			flagName:    "concurrency",
			flagValue:   "0",
			expectedErr: config.ErrInvalidConcurrentFiles,
		},
		{
			name:        "unknown log level",
			flagName:    "log-level",
			flagValue:   "verbose",
			expectedErr: config.ErrUnknownLogLevel,
		},
		{
			name:        "malformed include pattern",
			flagName:    "include",
			flagValue:   "[abc",
			expectedErr: config.ErrInvalidPattern,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := loadTestConfig(t)
			testCmd := newTestCommand()

			require.NoError(t, testCmd.Flags().Set(tt.flagName, tt.flagValue))

			err := bindFlagsToConfig(testCmd.Flags(), cfg)
			require.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

// TestCollectPaths tests merging positional paths with a paths file.
func TestCollectPaths(t *testing.T) {
	t.Parallel()

	paths, err := collectPaths([]string{"a.txt"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, paths)

	pathsFile := filepath.Join(t.TempDir(), "paths.txt")
	require.NoError(t, os.WriteFile(pathsFile, []byte("b.txt\na.txt\n\nc/**\n"), 0o600))

	paths, err = collectPaths([]string{"a.txt"}, pathsFile)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt", "c/**"}, paths)

	_, err = collectPaths(nil, filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}
