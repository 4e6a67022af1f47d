// Package watcher strips byte-order marks from files as they are created or changed.
// It watches folders recursively with fsnotify and hands settled files to the strip service.
package watcher
