// Package stripper applies BOM removal to files on disk.
// It resolves paths and glob patterns into a file list, processes files with a bounded
// worker pool, writes results atomically and keeps statistics for the final summary.
package stripper
