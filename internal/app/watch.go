package app

import (
	"context"

	"github.com/oshokin/bomb/internal/config"
	"github.com/oshokin/bomb/internal/logger"
	"github.com/oshokin/bomb/internal/service/watcher"
)

// ExecuteWatchCommand strips files under the given folders as they change, until ctx is canceled.
func ExecuteWatchCommand(ctx context.Context, cfg *config.Config, dirs []string) {
	s, pathResolver := newStripService(cfg)

	w, err := watcher.NewWatcher(cfg, s, pathResolver, dirs)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize watcher: %v", err)

		return
	}

	defer s.PrintSummary(ctx)

	if err = w.Run(ctx); err != nil {
		logger.Errorf(ctx, "Watcher failed: %v", err)
	}
}
