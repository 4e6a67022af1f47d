// Package utils provides small helpers for file handling, type conversion
// and slice manipulation shared across the application.
package utils
