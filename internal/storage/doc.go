// Package storage provides file access for the strip service.
// Writes go through a temporary .part file that is renamed over the target.
package storage
