package stripper

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/oshokin/bomb/internal/logger"
)

const summaryRule = "═══════════════════════════════════════════════════════════════"

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}

	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	return fmt.Sprintf("%ds", seconds)
}

// recordResult updates the counters for one processed file.
func (s *ServiceImpl) recordResult(result *FileResult) {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.FilesProcessed++

	switch result.Status {
	case FileStatusClean:
		s.stats.FilesClean++
	case FileStatusStripped, FileStatusWouldStrip:
		s.stats.FilesStripped++
		s.stats.BytesRemoved += result.BytesRemoved
		s.stats.StrippedByFamily[result.Family]++
	case FileStatusSkipped:
		s.stats.FilesSkipped++

		if result.SkipReason == SkipReasonTooLarge {
			s.stats.FilesSkippedTooLarge++
		}
	case FileStatusFailed:
		s.stats.FilesFailed++
	}
}

// addBytesScanned adds the size of a file that was read.
func (s *ServiceImpl) addBytesScanned(bytes int64) {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.BytesScanned += bytes
}

// Statistics returns a snapshot of the session statistics.
func (s *ServiceImpl) Statistics() Statistics {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	snapshot := *s.stats
	snapshot.StrippedByFamily = maps.Clone(s.stats.StrippedByFamily)
	snapshot.Errors = slices.Clone(s.stats.Errors)

	return snapshot
}

// PrintSummary prints a formatted summary of the session statistics.
func (s *ServiceImpl) PrintSummary(ctx context.Context) {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	stats := s.stats

	// If nothing was processed, don't print summary.
	if stats.FilesProcessed == 0 {
		return
	}

	// Check if the context was canceled (CTRL+C or timeout).
	wasInterrupted := ctx.Err() != nil

	s.printSummaryHeader(ctx, wasInterrupted, stats.IsDryRun)
	s.printFileStatistics(ctx, stats)
	s.printFamilyStatistics(ctx, stats)
	s.printDataStatistics(ctx, stats)
	logger.Info(ctx, summaryRule)
	s.printErrorDetails(ctx, stats)
}

// printSummaryHeader prints the summary header.
func (s *ServiceImpl) printSummaryHeader(ctx context.Context, wasInterrupted, isDryRun bool) {
	logger.Info(ctx, "")
	logger.Info(ctx, summaryRule)

	switch {
	case isDryRun:
		logger.Info(ctx, "                  DRY-RUN PREVIEW")
	case wasInterrupted:
		logger.Info(ctx, "              SUMMARY (Interrupted)")
	default:
		logger.Info(ctx, "                       SUMMARY")
	}

	logger.Info(ctx, summaryRule)
}

// printFileStatistics prints per-status file counters.
func (s *ServiceImpl) printFileStatistics(ctx context.Context, stats *Statistics) {
	logger.Infof(ctx, "Files processed:  %d", stats.FilesProcessed)

	if stats.IsDryRun {
		logger.Infof(ctx, "Would strip:      %d", stats.FilesStripped)
	} else {
		logger.Infof(ctx, "Stripped:         %d", stats.FilesStripped)
	}

	logger.Infof(ctx, "Clean:            %d", stats.FilesClean)

	if stats.FilesSkipped > 0 {
		logger.Infof(ctx, "Skipped:          %d (too large: %d)", stats.FilesSkipped, stats.FilesSkippedTooLarge)
	}

	if stats.FilesFailed > 0 {
		logger.Infof(ctx, "Failed:           %d", stats.FilesFailed)
	}
}

// printFamilyStatistics prints how many marks of each encoding family were found.
func (s *ServiceImpl) printFamilyStatistics(ctx context.Context, stats *Statistics) {
	if len(stats.StrippedByFamily) == 0 {
		return
	}

	logger.Info(ctx, "")

	for _, family := range slices.Sorted(maps.Keys(stats.StrippedByFamily)) {
		logger.Infof(ctx, "  %-9s %d", family.String()+":", stats.StrippedByFamily[family])
	}
}

// printDataStatistics prints byte counters and duration.
func (s *ServiceImpl) printDataStatistics(ctx context.Context, stats *Statistics) {
	logger.Info(ctx, "")

	//nolint:gosec // Counters are never negative.
	logger.Infof(ctx, "Data scanned:     %s", humanize.Bytes(uint64(stats.BytesScanned)))

	//nolint:gosec // Counters are never negative.
	logger.Infof(ctx, "BOM bytes:        %s", humanize.Bytes(uint64(stats.BytesRemoved)))

	if !stats.StartTime.IsZero() && !stats.EndTime.IsZero() {
		logger.Infof(ctx, "Duration:         %s", formatDuration(stats.EndTime.Sub(stats.StartTime)))
	}
}

// printErrorDetails prints detailed error information if any errors occurred.
func (s *ServiceImpl) printErrorDetails(ctx context.Context, stats *Statistics) {
	if len(stats.Errors) == 0 {
		return
	}

	logger.Errorf(ctx, "ERRORS ENCOUNTERED: %d", len(stats.Errors))

	for _, fileErr := range stats.Errors {
		logger.Errorf(ctx, "  %s (%s): %s", fileErr.Path, fileErr.Phase, fileErr.ErrorMessage)
	}
}

