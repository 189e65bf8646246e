package testenv

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// TestLogHandler is a slog.Handler that prints message index (starting from 0),
// level, and message content, without the timestamp.
// This allows test log output to be deterministic.
type TestLogHandler struct {
	mu    *sync.Mutex
	index *int
	out   io.Writer
	attrs []slog.Attr

	ignoreKeys  map[string]bool
	ignoreDebug bool
}

// TestLogHandlerOption is a function that configures a TestLogHandler
type TestLogHandlerOption func(*TestLogHandler)

// WithWriter sends output to w instead of stdout.
func WithWriter(w io.Writer) TestLogHandlerOption {
	return func(h *TestLogHandler) {
		h.out = w
	}
}

// WithIgnoreKeys drops attributes whose values vary between runs, such as
// durations.
func WithIgnoreKeys(keys ...string) TestLogHandlerOption {
	return func(h *TestLogHandler) {
		for _, k := range keys {
			h.ignoreKeys[k] = true
		}
	}
}

// WithIgnoreDebug configures the handler to ignore DEBUG level messages
func WithIgnoreDebug() TestLogHandlerOption {
	return func(h *TestLogHandler) {
		h.ignoreDebug = true
	}
}

func NewTestLogHandler(opts ...TestLogHandlerOption) *TestLogHandler {
	h := &TestLogHandler{
		mu:         new(sync.Mutex),
		index:      new(int),
		out:        os.Stdout,
		ignoreKeys: map[string]bool{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

//nolint:gocritic
func (h *TestLogHandler) Handle(_ context.Context, r slog.Record) error {
	if r.Level == slog.LevelDebug && h.ignoreDebug {
		return nil
	}

	var parts []string
	add := func(a slog.Attr) {
		if !h.ignoreKeys[a.Key] {
			parts = append(parts, fmt.Sprintf("%s=%v", a.Key, a.Value))
		}
	}
	for _, a := range h.attrs {
		add(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		add(a)
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	line := fmt.Sprintf("[%d] %s: %s", *h.index, r.Level, r.Message)
	if len(parts) > 0 {
		line += " " + strings.Join(parts, ", ")
	}
	*h.index++
	_, err := fmt.Fprintln(h.out, line)
	return err
}

func (h *TestLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level != slog.LevelDebug || !h.ignoreDebug
}

// WithAttrs shares the message index with h.
func (h *TestLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)
	return &clone
}

// WithGroup is not supported; attributes stay flat.
func (h *TestLogHandler) WithGroup(string) slog.Handler {
	return h
}
