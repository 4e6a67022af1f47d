package stripper

import (
	"fmt"
	"time"

	"github.com/oshokin/bomb/pkg/bomb"
)

// FileStatus is the outcome of processing one file.
type FileStatus uint8

const (
	// FileStatusClean - the file has no BOM.
	FileStatusClean FileStatus = iota
	// FileStatusStripped - a BOM was removed and the result written.
	FileStatusStripped
	// FileStatusWouldStrip - a BOM was found in dry-run mode.
	FileStatusWouldStrip
	// FileStatusSkipped - the file was not read.
	FileStatusSkipped
	// FileStatusFailed - the file could not be processed.
	FileStatusFailed
)

// String returns a human-readable representation of the FileStatus.
func (st FileStatus) String() string {
	switch st {
	case FileStatusClean:
		return "clean"
	case FileStatusStripped:
		return "stripped"
	case FileStatusWouldStrip:
		return "would strip"
	case FileStatusSkipped:
		return "skipped"
	case FileStatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("unknown: %d", st)
	}
}

// SkipReason represents why a file was skipped.
type SkipReason uint8

const (
	// SkipReasonTooLarge - file exceeds max_file_size.
	SkipReasonTooLarge SkipReason = iota
	// SkipReasonNotRegular - path is a directory, device, socket or similar.
	SkipReasonNotRegular
)

// InputFile is a file selected for processing.
type InputFile struct {
	// Path is the location of the file.
	Path string
	// RelPath is the path relative to the directory or glob base it was found under.
	// It decides where the file lands inside output_path.
	RelPath string
}

// FileResult describes what happened to one file.
type FileResult struct {
	// Path is the source file.
	Path string
	// Destination is where the result was (or would be) written. Empty if nothing was written.
	Destination string
	// Family is the encoding family of the removed mark.
	Family bomb.Family
	// BytesRemoved is the length of the removed mark.
	BytesRemoved int64
	// Status is the outcome.
	Status FileStatus
	// SkipReason is set when Status is FileStatusSkipped.
	SkipReason SkipReason
	// Err is the failure cause for FileStatusFailed and the skip cause for FileStatusSkipped.
	Err error
}

// DetectResult reports the BOM found in one file.
type DetectResult struct {
	// Path is the inspected file.
	Path string
	// Family is the detected encoding family.
	Family bomb.Family
	// HasBOM indicates whether a mark was found.
	HasBOM bool
	// Err is set when the file could not be read.
	Err error
}

// FileError is a per-file failure kept for the summary.
type FileError struct {
	// Path is the file that failed.
	Path string
	// Phase indicates when the error occurred (e.g., "reading file", "writing file").
	Phase string
	// ErrorMessage is the error text.
	ErrorMessage string
}

// Statistics tracks the results of a processing session.
type Statistics struct {
	// StartTime is when the session began.
	StartTime time.Time
	// EndTime is when the session completed.
	EndTime time.Time
	// IsDryRun indicates if this was a dry-run preview.
	IsDryRun bool
	// FilesProcessed is the total number of files attempted.
	FilesProcessed int64
	// FilesStripped is the number of files a BOM was removed from (or would be, in dry-run mode).
	FilesStripped int64
	// FilesClean is the number of files without a BOM.
	FilesClean int64
	// FilesSkipped is the total number of files skipped for any reason.
	FilesSkipped int64
	// FilesSkippedTooLarge is the number of files skipped due to the size limit.
	FilesSkippedTooLarge int64
	// FilesFailed is the number of files that could not be processed.
	FilesFailed int64
	// BytesRemoved is the total size of removed marks.
	BytesRemoved int64
	// BytesScanned is the total size of files read.
	BytesScanned int64
	// StrippedByFamily counts stripped files per encoding family.
	StrippedByFamily map[bomb.Family]int64
	// Errors holds per-file failures.
	Errors []FileError
}
