package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWriteFileAtomic tests that the target is replaced and no temporary files remain.
func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "nested", "file.txt")
	fileSystem := NewOSFileSystem()

	require.NoError(t, fileSystem.WriteFileAtomic(path, []byte("first"), 0o600))
	require.NoError(t, fileSystem.WriteFileAtomic(path, []byte("second"), 0o600))

	content, err := fileSystem.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), content)

	info, err := fileSystem.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(len("second")), info.Size())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "file.txt", entries[0].Name())
}

// TestWriteFileAtomic_RenameFailure tests cleanup when the target cannot be replaced.
func TestWriteFileAtomic_RenameFailure(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()

	// A non-empty directory cannot be replaced by a file.
	target := filepath.Join(tempDir, "target")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "child"), 0o755))

	err := NewOSFileSystem().WriteFileAtomic(target, []byte("data"), 0o600)
	require.Error(t, err)

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "target", entries[0].Name())
}

// TestReadFile_Missing tests that missing files are reported.
func TestReadFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := NewOSFileSystem().ReadFile(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

// TestReadPrefix tests that only the leading bytes are returned.
func TestReadPrefix(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	fileSystem := NewOSFileSystem()

	tests := []struct {
		name     string
		content  []byte
		size     int
		expected []byte
	}{
		{
			name:     "longer file is cut",
			content:  []byte("\xFF\xFE\x00\x00rest of the file"),
			size:     4,
			expected: []byte("\xFF\xFE\x00\x00"),
		},
		{
			name:     "shorter file is returned whole",
			content:  []byte("\xFE\xFF"),
			size:     4,
			expected: []byte("\xFE\xFF"),
		},
		{
			name:     "empty file",
			content:  []byte{},
			size:     4,
			expected: []byte{},
		},
	}

	for i, tt := range tests {
		path := filepath.Join(tempDir, "file"+string(rune('a'+i)))
		require.NoError(t, os.WriteFile(path, tt.content, 0o600))

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			prefix, err := fileSystem.ReadPrefix(path, tt.size)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, prefix)
		})
	}

	_, err := fileSystem.ReadPrefix(filepath.Join(tempDir, "missing"), 4)
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}
