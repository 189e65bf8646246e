// Package slog adapts a [log/slog.Handler] to the client's logger interface,
// for programs that already route their logs through log/slog.
package slog

import (
	"log/slog"
)

// SlogHandler forwards the session's round-trip logs (op, method, path,
// status, duration, err) to a slog.Logger as ordinary attributes.
type SlogHandler struct {
	logger *slog.Logger
}

func New(h slog.Handler) *SlogHandler {
	return FromLogger(slog.New(h))
}

// FromLogger wraps an existing logger, e.g. slog.Default().
func FromLogger(l *slog.Logger) *SlogHandler {
	return &SlogHandler{logger: l}
}

// With returns an adapter that adds args to every record, e.g. the server
// URL when one program talks to several servers.
func (handler *SlogHandler) With(args ...any) *SlogHandler {
	return &SlogHandler{logger: handler.logger.With(args...)}
}

func (handler *SlogHandler) Error(msg string, args ...any) {
	handler.logger.Error(msg, args...)
}

func (handler *SlogHandler) Warn(msg string, args ...any) {
	handler.logger.Warn(msg, args...)
}

func (handler *SlogHandler) Info(msg string, args ...any) {
	handler.logger.Info(msg, args...)
}

func (handler *SlogHandler) Debug(msg string, args ...any) {
	handler.logger.Debug(msg, args...)
}
