package stripper

import (
	"context"
	"errors"
)

// Common errors for the service layer.
var (
	// ErrNoFilesMatched indicates that a path or pattern did not select any file.
	ErrNoFilesMatched = errors.New("no files matched")
	// ErrFileTooLarge indicates that a file exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file exceeds max file size")
	// ErrNotRegularFile indicates that a path is not a regular file.
	ErrNotRegularFile = errors.New("not a regular file")
	// ErrDestinationConflict indicates that two input files map to the same output file.
	ErrDestinationConflict = errors.New("output file conflicts with another input")
)

// recordError records a per-file failure in the statistics.
// Context cancellation is expected during shutdown and is not recorded.
func (s *ServiceImpl) recordError(path, phase string, err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}

	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.Errors = append(s.stats.Errors, FileError{
		Path:         path,
		Phase:        phase,
		ErrorMessage: err.Error(),
	})
}
