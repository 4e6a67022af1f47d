package stripper

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/oshokin/bomb/internal/logger"
)

// PathResolver turns command-line arguments into the list of files to process.
type PathResolver interface {
	// ResolvePaths expands files, directories and glob patterns into unique input files.
	ResolvePaths(ctx context.Context, patterns []string) ([]InputFile, error)
	// IsSelected reports whether a path relative to a watched or walked root passes the filters.
	IsSelected(relPath string) bool
	// IsExcluded reports whether a relative file or folder path matches an exclude pattern.
	IsExcluded(relPath string) bool
}

// PathResolverImpl filters files with doublestar include and exclude patterns.
type PathResolverImpl struct {
	// includePatterns select files found by walking a directory.
	includePatterns []string
	// excludePatterns drop files and whole directories.
	excludePatterns []string
}

// NewPathResolver creates a resolver with the given filters.
func NewPathResolver(includePatterns, excludePatterns []string) PathResolver {
	return &PathResolverImpl{
		includePatterns: includePatterns,
		excludePatterns: excludePatterns,
	}
}

// ResolvePaths expands files, directories and glob patterns into unique input files.
// Files named explicitly are always selected; filters apply to directory and glob results.
func (r *PathResolverImpl) ResolvePaths(ctx context.Context, patterns []string) ([]InputFile, error) {
	var (
		result = make([]InputFile, 0, len(patterns))
		seen   = make(map[string]struct{})
	)

	for _, pattern := range patterns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		files, err := r.resolvePattern(ctx, pattern)
		if err != nil {
			return nil, err
		}

		if len(files) == 0 {
			logger.Warnf(ctx, "Pattern '%s': %v", pattern, ErrNoFilesMatched)

			continue
		}

		for _, file := range files {
			key := filepath.Clean(file.Path)
			if _, exists := seen[key]; exists {
				continue
			}

			seen[key] = struct{}{}

			result = append(result, file)
		}
	}

	return result, nil
}

// IsSelected reports whether a path relative to a watched or walked root passes the filters.
func (r *PathResolverImpl) IsSelected(relPath string) bool {
	return r.isIncluded(relPath) && !r.IsExcluded(relPath)
}

func (r *PathResolverImpl) resolvePattern(ctx context.Context, pattern string) ([]InputFile, error) {
	info, err := os.Stat(pattern)
	if err == nil {
		if info.IsDir() {
			return r.walkDirectory(ctx, pattern)
		}

		return []InputFile{{Path: pattern, RelPath: filepath.Base(pattern)}}, nil
	}

	base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))

	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to expand pattern '%s': %w", pattern, err)
	}

	files := make([]InputFile, 0, len(matches))

	for _, match := range matches {
		relPath, relErr := filepath.Rel(filepath.FromSlash(base), match)
		if relErr != nil {
			relPath = filepath.Base(match)
		}

		if r.IsExcluded(relPath) {
			continue
		}

		files = append(files, InputFile{Path: match, RelPath: relPath})
	}

	return files, nil
}

func (r *PathResolverImpl) walkDirectory(ctx context.Context, root string) ([]InputFile, error) {
	var files []InputFile

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if path == root {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		if entry.IsDir() {
			if r.IsExcluded(relPath) {
				return filepath.SkipDir
			}

			return nil
		}

		if !entry.Type().IsRegular() || !r.IsSelected(relPath) {
			return nil
		}

		files = append(files, InputFile{Path: path, RelPath: relPath})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk folder '%s': %w", root, err)
	}

	return files, nil
}

func (r *PathResolverImpl) isIncluded(relPath string) bool {
	if len(r.includePatterns) == 0 {
		return true
	}

	return matchesAny(r.includePatterns, relPath)
}

// IsExcluded reports whether a relative file or folder path matches an exclude pattern.
// Folders are also tested with a trailing slash so that "dir/**" excludes "dir" itself.
func (r *PathResolverImpl) IsExcluded(relPath string) bool {
	if matchesAny(r.excludePatterns, relPath) {
		return true
	}

	return matchesAny(r.excludePatterns, filepath.ToSlash(relPath)+"/")
}

func matchesAny(patterns []string, relPath string) bool {
	slashPath := filepath.ToSlash(relPath)

	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, slashPath); err == nil && ok {
			return true
		}
	}

	return false
}
