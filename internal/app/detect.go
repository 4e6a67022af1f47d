package app

import (
	"context"
	"fmt"
	"io"

	"github.com/oshokin/bomb/internal/config"
	"github.com/oshokin/bomb/internal/logger"
)

// ExecuteDetectCommand prints the BOM family of every selected file to out.
// Files without a mark are listed only when showAll is set.
func ExecuteDetectCommand(ctx context.Context, cfg *config.Config, paths []string, showAll bool, out io.Writer) bool {
	s, _ := newStripService(cfg)

	results, err := s.DetectPaths(ctx, paths)
	if err != nil {
		logger.Errorf(ctx, "Failed to detect byte-order marks: %v", err)

		return false
	}

	isSuccessful := true

	for _, result := range results {
		switch {
		case result.Err != nil:
			logger.Errorf(ctx, "Failed to read '%s': %v", result.Path, result.Err)

			isSuccessful = false
		case result.HasBOM:
			_, _ = fmt.Fprintf(out, "%s: %s\n", result.Path, result.Family)
		case showAll:
			_, _ = fmt.Fprintf(out, "%s: none\n", result.Path)
		}
	}

	return isSuccessful
}
