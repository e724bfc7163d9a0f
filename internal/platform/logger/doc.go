// Package logger provides structured logging functionality for the
// application using Go's standard library log/slog package, plus the
// per-request scope that carries the correlation id and the fields
// destined for the canonical log line.
package logger
