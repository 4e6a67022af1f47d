package stripper

import (
	"context"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// relPaths returns the sorted relative paths of resolved files.
func relPaths(files []InputFile) []string {
	result := make([]string, 0, len(files))
	for _, file := range files {
		result = append(result, filepath.ToSlash(file.RelPath))
	}

	sort.Strings(result)

	return result
}

// TestResolvePaths_Directory tests recursive walking with include and exclude filters.
func TestResolvePaths_Directory(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	writeTestFile(t, filepath.Join(tempDir, "a.csv"), []byte("a"))
	writeTestFile(t, filepath.Join(tempDir, "b.txt"), []byte("b"))
	writeTestFile(t, filepath.Join(tempDir, "sub", "c.csv"), []byte("c"))
	writeTestFile(t, filepath.Join(tempDir, ".git", "d.csv"), []byte("d"))
	writeTestFile(t, filepath.Join(tempDir, "vendor", "e.csv"), []byte("e"))

	resolver := NewPathResolver([]string{"**/*.csv"}, []string{".git/**", "vendor/**"})

	files, err := resolver.ResolvePaths(context.Background(), []string{tempDir})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.csv", "sub/c.csv"}, relPaths(files))
}

// TestResolvePaths_Glob tests doublestar patterns and relative paths under the glob base.
func TestResolvePaths_Glob(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	writeTestFile(t, filepath.Join(tempDir, "x", "one.json"), []byte("1"))
	writeTestFile(t, filepath.Join(tempDir, "x", "y", "two.json"), []byte("2"))
	writeTestFile(t, filepath.Join(tempDir, "x", "three.yaml"), []byte("3"))

	resolver := NewPathResolver(nil, nil)

	files, err := resolver.ResolvePaths(context.Background(), []string{filepath.Join(tempDir, "x", "**", "*.json")})
	require.NoError(t, err)
	assert.Equal(t, []string{"one.json", "y/two.json"}, relPaths(files))
}

// TestResolvePaths_Deduplicates tests that a file selected twice is processed once.
func TestResolvePaths_Deduplicates(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "file.txt")
	writeTestFile(t, path, []byte("x"))

	resolver := NewPathResolver(nil, nil)

	files, err := resolver.ResolvePaths(context.Background(), []string{path, tempDir, filepath.Join(tempDir, "*.txt")})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "file.txt", files[0].RelPath)
}

// TestResolvePaths_ExplicitFileIgnoresInclude tests that named files bypass include filters.
func TestResolvePaths_ExplicitFileIgnoresInclude(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "notes.md")
	writeTestFile(t, path, []byte("x"))

	resolver := NewPathResolver([]string{"**/*.csv"}, nil)

	files, err := resolver.ResolvePaths(context.Background(), []string{path})
	require.NoError(t, err)
	require.Len(t, files, 1)
}

// TestResolvePaths_NoMatches tests that unmatched patterns produce no files and no error.
func TestResolvePaths_NoMatches(t *testing.T) {
	t.Parallel()

	resolver := NewPathResolver(nil, nil)

	files, err := resolver.ResolvePaths(context.Background(), []string{filepath.Join(t.TempDir(), "missing.txt")})
	require.NoError(t, err)
	assert.Empty(t, files)
}

// TestResolvePaths_InvalidPattern tests that malformed globs are reported.
func TestResolvePaths_InvalidPattern(t *testing.T) {
	t.Parallel()

	resolver := NewPathResolver(nil, nil)

	_, err := resolver.ResolvePaths(context.Background(), []string{filepath.Join(t.TempDir(), "[")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to expand pattern")
}

// TestIsSelected tests include and exclude matching on relative paths.
func TestIsSelected(t *testing.T) {
	t.Parallel()

	resolver := NewPathResolver([]string{"**/*.txt"}, []string{"tmp/**"})

	tests := []struct {
		name     string
		relPath  string
		expected bool
	}{
		{
			name:     "top level match",
			relPath:  "a.txt",
			expected: true,
		},
		{
			name:     "nested match",
			relPath:  filepath.Join("a", "b", "c.txt"),
			expected: true,
		},
		{
			name:     "wrong extension",
			relPath:  "a.csv",
			expected: false,
		},
		{
			name:     "excluded folder",
			relPath:  filepath.Join("tmp", "a.txt"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, resolver.IsSelected(tt.relPath))
		})
	}
}

// TestIsExcluded tests exclude matching on files and folders.
func TestIsExcluded(t *testing.T) {
	t.Parallel()

	resolver := NewPathResolver([]string{"**/*.csv"}, []string{"vendor/**", "**/.git/**"})

	tests := []struct {
		relPath  string
		expected bool
	}{
		{relPath: "vendor", expected: true},
		{relPath: "vendor/lib/a.csv", expected: true},
		{relPath: "sub/.git", expected: true},
		{relPath: "sub/.git/config", expected: true},
		{relPath: "sub", expected: false},
		{relPath: "data/a.csv", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.relPath, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, resolver.IsExcluded(tt.relPath))
		})
	}
}
