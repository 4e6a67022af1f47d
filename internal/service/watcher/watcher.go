package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/oshokin/bomb/internal/config"
	"github.com/oshokin/bomb/internal/constants"
	"github.com/oshokin/bomb/internal/logger"
	"github.com/oshokin/bomb/internal/service/stripper"
)

// recentWritesCacheSize bounds the number of remembered own writes.
const recentWritesCacheSize = 1024

// ErrNotDirectory indicates that a watch root is not a folder.
var ErrNotDirectory = errors.New("watch root is not a directory")

// Watcher strips files under a set of folders whenever they change.
type Watcher struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// service processes settled files.
	service stripper.Service
	// pathResolver filters files by include and exclude patterns.
	pathResolver stripper.PathResolver
	// roots are the absolute watched folders.
	roots []string
	// recentWrites maps paths rewritten by us to their modification time after the rewrite,
	// so that the change notification caused by our own write is not processed again.
	recentWrites *lru.Cache[string, time.Time]
	// debouncer waits for files to settle before processing.
	debouncer *debouncer
	// ready receives settled paths.
	ready chan string
	// started is closed once every root is being watched.
	started chan struct{}
}

// NewWatcher creates a watcher for the given folders.
func NewWatcher(
	cfg *config.Config,
	service stripper.Service,
	pathResolver stripper.PathResolver,
	roots []string,
) (*Watcher, error) {
	absoluteRoots := make([]string, 0, len(roots))

	for _, root := range roots {
		absoluteRoot, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve watch root '%s': %w", root, err)
		}

		info, err := os.Stat(absoluteRoot)
		if err != nil {
			return nil, fmt.Errorf("failed to read watch root '%s': %w", root, err)
		}

		if !info.IsDir() {
			return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
		}

		absoluteRoots = append(absoluteRoots, absoluteRoot)
	}

	recentWrites, err := lru.New[string, time.Time](recentWritesCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	return &Watcher{
		cfg:          cfg,
		service:      service,
		pathResolver: pathResolver,
		roots:        absoluteRoots,
		recentWrites: recentWrites,
		debouncer:    newDebouncer(cfg.ParsedWatchDebounce),
		ready:        make(chan string),
		started:      make(chan struct{}),
	}, nil
}

// Run watches the roots until the context is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	defer fsWatcher.Close() //nolint:errcheck // Error on close is not critical here.
	defer w.debouncer.stop()

	for _, root := range w.roots {
		if err = w.addRecursive(fsWatcher, root); err != nil {
			return err
		}

		logger.Infof(ctx, "Watching '%s'", root)
	}

	close(w.started)

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Watcher stopped")

			return nil
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}

			w.handleEvent(ctx, fsWatcher, event)
		case watchErr, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}

			logger.Errorf(ctx, "Watcher error: %v", watchErr)
		case path := <-w.ready:
			w.process(ctx, path)
		}
	}
}

// Started is closed once Run watches every root.
func (w *Watcher) Started() <-chan struct{} {
	return w.started
}

// handleEvent filters a notification and schedules the file for processing.
func (w *Watcher) handleEvent(ctx context.Context, fsWatcher *fsnotify.Watcher, event fsnotify.Event) {
	logger.DebugKV(ctx, "Event received", "name", event.Name, "op", event.Op.String())

	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	// Temporary files of our own atomic writes.
	if strings.HasSuffix(event.Name, constants.ExtensionPart) {
		return
	}

	relPath, ok := w.relativePath(event.Name)
	if !ok {
		return
	}

	if event.Has(fsnotify.Create) {
		info, err := os.Stat(event.Name)
		if err == nil && info.IsDir() {
			if !w.pathResolver.IsExcluded(relPath) {
				if err = w.addRecursive(fsWatcher, event.Name); err != nil {
					logger.Warnf(ctx, "Failed to watch new folder '%s': %v", event.Name, err)
				}
			}

			return
		}
	}

	if !w.pathResolver.IsSelected(relPath) {
		return
	}

	w.schedule(ctx, event.Name)
}

// schedule hands the path to the event loop once it has been quiet for the debounce period.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.debouncer.add(path, func() {
		select {
		case w.ready <- path:
		case <-ctx.Done():
		}
	})
}

// process strips a settled file unless the change was our own rewrite.
func (w *Watcher) process(ctx context.Context, path string) {
	info, err := os.Stat(path)
	if err != nil {
		// Removed or renamed before it settled.
		logger.Debugf(ctx, "Skipping '%s': %v", path, err)

		return
	}

	if modTime, ok := w.recentWrites.Get(path); ok && modTime.Equal(info.ModTime()) {
		return
	}

	relPath, _ := w.relativePath(path)

	result := w.service.StripFile(ctx, stripper.InputFile{Path: path, RelPath: relPath})
	if result == nil || result.Status != stripper.FileStatusStripped || result.Destination != path {
		return
	}

	if info, err = os.Stat(path); err == nil {
		w.recentWrites.Add(path, info.ModTime())
	}
}

// addRecursive adds root and every non-excluded folder below it to the watcher.
func (w *Watcher) addRecursive(fsWatcher *fsnotify.Watcher, root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !entry.IsDir() {
			return nil
		}

		if relPath, ok := w.relativePath(path); ok && relPath != "." && w.pathResolver.IsExcluded(relPath) {
			return filepath.SkipDir
		}

		return fsWatcher.Add(path)
	})
	if err != nil {
		return fmt.Errorf("failed to watch folder '%s': %w", root, err)
	}

	return nil
}

// relativePath returns path relative to the watch root containing it.
func (w *Watcher) relativePath(path string) (string, bool) {
	absolutePath, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}

	for _, root := range w.roots {
		relPath, err := filepath.Rel(root, absolutePath)
		if err != nil || relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
			continue
		}

		return relPath, true
	}

	return "", false
}
