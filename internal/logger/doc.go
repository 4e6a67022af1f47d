// Package logger provides structured logging on top of the Zap logging library.
// A process-wide sugared logger with an adjustable level is created at startup;
// the helpers take a context so that a request-scoped logger can be attached later
// with ToContext, falling back to the global one otherwise.
package logger
