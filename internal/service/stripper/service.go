package stripper

//go:generate $MOCKGEN -source=service.go -destination=mocks/service_mock.go

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/oshokin/bomb/internal/config"
	"github.com/oshokin/bomb/internal/logger"
	"github.com/oshokin/bomb/internal/storage"
	"github.com/oshokin/bomb/pkg/bomb"
)

// Service removes byte-order marks from files.
type Service interface {
	// StripPaths resolves the patterns and strips every selected file.
	StripPaths(ctx context.Context, patterns []string)
	// StripFile strips a single file and records the outcome.
	StripFile(ctx context.Context, file InputFile) *FileResult
	// DetectPaths resolves the patterns and reports the BOM of every selected file.
	DetectPaths(ctx context.Context, patterns []string) ([]*DetectResult, error)
	// PrintSummary prints a formatted summary of the session statistics.
	PrintSummary(ctx context.Context)
	// Statistics returns a snapshot of the session statistics.
	Statistics() Statistics
}

// ServiceImpl implements Service on top of a FileSystem.
type ServiceImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// fileSystem reads and writes files.
	fileSystem storage.FileSystem
	// pathResolver expands command-line arguments into files.
	pathResolver PathResolver
	// stats tracks statistics for the current session.
	stats *Statistics
	// statsMutex protects concurrent access to statistics.
	statsMutex *sync.Mutex
}

// NewService creates a strip service instance with dependency-injected components.
func NewService(cfg *config.Config, fileSystem storage.FileSystem, pathResolver PathResolver) Service {
	return &ServiceImpl{
		cfg:          cfg,
		fileSystem:   fileSystem,
		pathResolver: pathResolver,
		stats: &Statistics{
			IsDryRun:         cfg.DryRun,
			StrippedByFamily: make(map[bomb.Family]int64),
		},
		statsMutex: new(sync.Mutex),
	}
}

// StripPaths resolves the patterns and strips every selected file.
func (s *ServiceImpl) StripPaths(ctx context.Context, patterns []string) {
	s.statsMutex.Lock()
	s.stats.StartTime = time.Now()
	s.statsMutex.Unlock()

	defer func() {
		s.statsMutex.Lock()
		s.stats.EndTime = time.Now()
		s.statsMutex.Unlock()
	}()

	files, err := s.pathResolver.ResolvePaths(ctx, patterns)
	if err != nil {
		logger.Errorf(ctx, "Failed to resolve paths: %v", err)

		return
	}

	if len(files) == 0 {
		logger.Warn(ctx, "Nothing to process")

		return
	}

	files = s.claimDestinations(ctx, files)

	logger.Infof(ctx, "Processing %d file(s)", len(files))

	if s.cfg.MaxConcurrentFiles <= 1 {
		s.stripFilesSequentially(ctx, files)
	} else {
		s.stripFilesConcurrently(ctx, files, s.cfg.MaxConcurrentFiles)
	}

	logger.Info(ctx, "Processing completed")
}

// stripFilesSequentially processes files one by one with a progress bar.
func (s *ServiceImpl) stripFilesSequentially(ctx context.Context, files []InputFile) {
	var bar *progressbar.ProgressBar

	// The bar is drawn at info level only, at debug it would interleave with the log.
	if logger.Level() == zap.InfoLevel {
		bar = progressbar.NewOptions(
			len(files),
			progressbar.OptionSetDescription("Stripping"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	for _, file := range files {
		// Check if context was canceled (CTRL+C pressed) - stop immediately.
		select {
		case <-ctx.Done():
			return
		default:
		}

		// Per-file results go to debug while the bar is drawn, the summary reports the totals.
		s.processFile(ctx, file, bar != nil)

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if bar != nil {
		_ = bar.Finish()
	}
}

// stripFilesConcurrently processes files using a worker pool.
func (s *ServiceImpl) stripFilesConcurrently(ctx context.Context, files []InputFile, maxConcurrent int64) {
	// Create a semaphore channel to limit concurrent processing.
	semaphore := make(chan struct{}, maxConcurrent)

	var waitGroup sync.WaitGroup

	for _, file := range files {
		// Check if context was canceled (CTRL+C pressed) - stop queueing new files.
		select {
		case <-ctx.Done():
			goto waitForCompletion
		default:
		}

		waitGroup.Add(1)

		go func(currentFile InputFile) {
			defer waitGroup.Done()

			// Acquire semaphore slot (blocks if all workers are busy).
			semaphore <- struct{}{}

			defer func() {
				// Release semaphore slot when done.
				<-semaphore
			}()

			if ctx.Err() != nil {
				return
			}

			s.StripFile(ctx, currentFile)
		}(file)
	}

waitForCompletion:
	// Wait for all in-flight files to complete.
	waitGroup.Wait()
}

// StripFile strips a single file and records the outcome.
func (s *ServiceImpl) StripFile(ctx context.Context, file InputFile) *FileResult {
	return s.processFile(ctx, file, false)
}

// processFile strips a file, logs the outcome and records it.
// Quiet mode logs stripped files at debug level.
func (s *ServiceImpl) processFile(ctx context.Context, file InputFile, isQuiet bool) *FileResult {
	result := s.stripFile(ctx, file)

	logResult := logger.Infof
	if isQuiet {
		logResult = logger.Debugf
	}

	switch result.Status {
	case FileStatusClean:
		logger.Debugf(ctx, "No BOM in '%s'", file.Path)
	case FileStatusStripped:
		logResult(ctx, "Removed %s BOM from '%s'", result.Family, file.Path)
	case FileStatusWouldStrip:
		logResult(ctx, "[DRY-RUN] Would remove %s BOM from '%s'", result.Family, file.Path)
	case FileStatusSkipped:
		logger.Debugf(ctx, "Skipping '%s': %v", file.Path, result.Err)
	case FileStatusFailed:
		logger.Errorf(ctx, "Failed to process '%s': %v", file.Path, result.Err)
	}

	s.recordResult(result)

	return result
}

//nolint:funlen // Function walks through the sequential steps of processing one file.
func (s *ServiceImpl) stripFile(ctx context.Context, file InputFile) *FileResult {
	result := &FileResult{Path: file.Path}

	fail := func(phase string, err error) *FileResult {
		result.Status = FileStatusFailed
		result.Err = err
		s.recordError(file.Path, phase, err)

		return result
	}

	info, err := s.fileSystem.Stat(file.Path)
	if err != nil {
		return fail("reading file info", err)
	}

	if !info.Mode().IsRegular() {
		result.Status = FileStatusSkipped
		result.SkipReason = SkipReasonNotRegular
		result.Err = ErrNotRegularFile

		return result
	}

	if s.cfg.ParsedMaxFileSize > 0 && info.Size() > s.cfg.ParsedMaxFileSize {
		logger.Warnf(ctx, "Skipping '%s': %v (%d > %d bytes)",
			file.Path, ErrFileTooLarge, info.Size(), s.cfg.ParsedMaxFileSize)

		result.Status = FileStatusSkipped
		result.SkipReason = SkipReasonTooLarge
		result.Err = ErrFileTooLarge

		return result
	}

	data, err := s.fileSystem.ReadFile(file.Path)
	if err != nil {
		return fail("reading file", err)
	}

	s.addBytesScanned(int64(len(data)))

	text, err := bomb.DecodeRaw(data)
	if err != nil {
		return fail("decoding file", err)
	}

	signature, hasBOM := bomb.Detect(text)
	destination := s.destinationFor(file)

	if !hasBOM {
		result.Status = FileStatusClean

		// In-place mode leaves clean files alone; an output folder gets a verbatim copy.
		if destination == file.Path || s.cfg.DryRun {
			return result
		}

		if err = s.fileSystem.WriteFileAtomic(destination, data, info.Mode().Perm()); err != nil {
			return fail("copying file", err)
		}

		result.Destination = destination

		return result
	}

	result.Family = signature.Family
	result.BytesRemoved = int64(signature.Len())
	result.Destination = destination

	if s.cfg.DryRun {
		result.Status = FileStatusWouldStrip

		return result
	}

	stripped, err := bomb.EncodeRaw(bomb.TrimString(text))
	if err != nil {
		return fail("encoding file", err)
	}

	if err = s.fileSystem.WriteFileAtomic(destination, stripped, info.Mode().Perm()); err != nil {
		return fail("writing file", err)
	}

	result.Status = FileStatusStripped

	return result
}

// destinationFor returns the output location of a file.
func (s *ServiceImpl) destinationFor(file InputFile) string {
	if s.cfg.OutputPath == "" {
		return file.Path
	}

	relPath := file.RelPath
	if relPath == "" {
		relPath = filepath.Base(file.Path)
	}

	return filepath.Join(s.cfg.OutputPath, relPath)
}

// claimDestinations keeps the first file written to each output location.
// Later files mapping to a taken location are recorded as failed instead of overwriting it.
func (s *ServiceImpl) claimDestinations(ctx context.Context, files []InputFile) []InputFile {
	if s.cfg.OutputPath == "" {
		return files
	}

	var (
		result = make([]InputFile, 0, len(files))
		owners = make(map[string]string, len(files))
	)

	for _, file := range files {
		destination := filepath.Clean(s.destinationFor(file))

		owner, isTaken := owners[destination]
		if !isTaken {
			owners[destination] = file.Path
			result = append(result, file)

			continue
		}

		err := fmt.Errorf("%w: '%s' is already written from '%s'", ErrDestinationConflict, destination, owner)

		logger.Errorf(ctx, "Failed to process '%s': %v", file.Path, err)
		s.recordError(file.Path, "resolving destination", err)
		s.recordResult(&FileResult{
			Path:        file.Path,
			Destination: destination,
			Status:      FileStatusFailed,
			Err:         err,
		})
	}

	return result
}

// DetectPaths resolves the patterns and reports the BOM of every selected file.
func (s *ServiceImpl) DetectPaths(ctx context.Context, patterns []string) ([]*DetectResult, error) {
	files, err := s.pathResolver.ResolvePaths(ctx, patterns)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}

	results := make([]*DetectResult, 0, len(files))

	for _, file := range files {
		if err = ctx.Err(); err != nil {
			return results, err
		}

		result := &DetectResult{Path: file.Path}

		prefix, readErr := s.fileSystem.ReadPrefix(file.Path, bomb.MaxSignatureLen)
		if readErr != nil {
			result.Err = readErr
			results = append(results, result)

			continue
		}

		// Bytes are compared directly, no need to decode.
		signature, hasBOM := bomb.DetectBytes(prefix)
		result.Family = signature.Family
		result.HasBOM = hasBOM

		results = append(results, result)
	}

	return results, nil
}
