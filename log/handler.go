// Package log provides a slog.Handler that writes through the host facade, so
// diagnostics land wherever the environment's stdout and stderr services point.
package log

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/jsil-dev/host-sdk/go/domain/ports"
)

// Handler implements slog.Handler. Records below slog.LevelWarn are written
// with LogWriteLine, warnings and errors with Warning.
type Handler struct {
	host   ports.Host
	opts   handlerConfig
	prefix string // group prefix applied to later attrs, e.g. "req."
	attrs  string // pre-formatted attrs from WithAttrs
}

// HandlerOption configures the Handler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	level     slog.Leveler
	addSource bool
}

// defaultHandlerConfig returns the default configuration.
func defaultHandlerConfig() handlerConfig {
	return handlerConfig{
		level: slog.LevelInfo,
	}
}

// WithLevel sets the minimum log level to report.
func WithLevel(level slog.Leveler) HandlerOption {
	return func(c *handlerConfig) {
		c.level = level
	}
}

// WithSource enables reporting of source location (file/line).
func WithSource(enabled bool) HandlerOption {
	return func(c *handlerConfig) {
		c.addSource = enabled
	}
}

// NewHandler creates a Handler writing through h.
func NewHandler(h ports.Host, opts ...HandlerOption) *Handler {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Handler{host: h, opts: cfg}
}

// New returns a logger backed by a Handler writing through h.
func New(h ports.Host, opts ...HandlerOption) *slog.Logger {
	return slog.New(NewHandler(h, opts...))
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.level.Level()
}

// Handle formats record as one "LEVEL message key=value ..." line.
func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	var b strings.Builder
	b.WriteString(record.Level.String())
	b.WriteByte(' ')
	b.WriteString(record.Message)

	if h.opts.addSource && record.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{record.PC})
		frame, _ := frames.Next()
		fmt.Fprintf(&b, " source=%s:%d", filepath.Base(frame.File), frame.Line)
	}

	b.WriteString(h.attrs)
	record.Attrs(func(attr slog.Attr) bool {
		appendAttr(&b, h.prefix, attr)
		return true
	})

	line := b.String()
	if record.Level >= slog.LevelWarn {
		return h.host.Warning(line + "\n")
	}
	return h.host.LogWriteLine(line)
}

// WithAttrs returns a new Handler that includes the given attributes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var b strings.Builder
	b.WriteString(h.attrs)
	for _, attr := range attrs {
		appendAttr(&b, h.prefix, attr)
	}
	next := *h
	next.attrs = b.String()
	return &next
}

// WithGroup returns a new Handler that qualifies later attributes with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}
