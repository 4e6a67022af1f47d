package storage

//go:generate $MOCKGEN -source=filesystem.go -destination=mocks/filesystem_mock.go

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/oshokin/bomb/internal/constants"
)

// FileSystem is the file access the service needs.
type FileSystem interface {
	// Stat returns file information for the path.
	Stat(path string) (os.FileInfo, error)
	// ReadFile reads the whole file.
	ReadFile(path string) ([]byte, error)
	// ReadPrefix reads at most size leading bytes of the file.
	ReadPrefix(path string, size int) ([]byte, error)
	// WriteFileAtomic replaces the file at path with data, creating parent folders.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error
}

// OSFileSystem implements FileSystem on top of the os package.
type OSFileSystem struct{}

// NewOSFileSystem creates a FileSystem backed by the local disk.
func NewOSFileSystem() FileSystem {
	return new(OSFileSystem)
}

// Stat returns file information for the path.
func (*OSFileSystem) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile reads the whole file.
func (*OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(filepath.Clean(path))
}

// ReadPrefix reads at most size leading bytes of the file.
// A file shorter than size is returned whole.
func (*OSFileSystem) ReadPrefix(path string, size int) ([]byte, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	defer f.Close() //nolint:errcheck // Error on close is not critical for a read.

	buf := make([]byte, size)

	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return buf[:n], nil
}

// WriteFileAtomic writes data to a uniquely named .part file next to path and renames it over path.
// Readers never observe a half-written file.
func (*OSFileSystem) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, constants.DefaultFolderPermissions); err != nil {
		return fmt.Errorf("failed to create folder: %w", err)
	}

	tempFilePath := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+constants.ExtensionPart)

	f, err := os.OpenFile(filepath.Clean(tempFilePath), os.O_CREATE|os.O_EXCL|os.O_WRONLY, perm)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	var isClosed, isRenamed bool

	defer func() {
		if !isClosed {
			_ = f.Close()
		}

		if !isRenamed {
			_ = os.Remove(tempFilePath)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err = f.Sync(); err != nil {
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	isClosed = true

	if err = f.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err = os.Rename(tempFilePath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	isRenamed = true

	return nil
}
