package app

import (
	"context"

	"github.com/oshokin/bomb/internal/config"
	"github.com/oshokin/bomb/internal/logger"
	"github.com/oshokin/bomb/internal/service/stripper"
	"github.com/oshokin/bomb/internal/storage"
)

// newStripService builds the strip service from the configuration.
func newStripService(cfg *config.Config) (stripper.Service, stripper.PathResolver) {
	pathResolver := stripper.NewPathResolver(cfg.IncludePatterns, cfg.ExcludePatterns)

	return stripper.NewService(cfg, storage.NewOSFileSystem(), pathResolver), pathResolver
}

// ExecuteRootCommand strips byte-order marks from the given files, folders and patterns.
// It returns false if any file failed.
func ExecuteRootCommand(ctx context.Context, cfg *config.Config, paths []string) bool {
	s, _ := newStripService(cfg)

	// Ensure statistics are ALWAYS printed, even on panic.
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf(ctx, "Panic recovered: %v", r)
		}

		s.PrintSummary(ctx)
	}()

	s.StripPaths(ctx, paths)

	return s.Statistics().FilesFailed == 0
}
