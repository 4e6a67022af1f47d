// Package app wires configuration, storage and services together for each CLI command.
package app
