package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// HomeMask is the string that replaces the user's home directory in log output.
const HomeMask = "~"

// PathHandler wraps an slog.Handler to mask the user's home directory in
// attribute values. Scan logs are full of filesystem paths, and users paste
// them into bug reports and CI output; masking the home prefix keeps local
// usernames out of shared logs.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Attributes attached via Logger.With pass through the same masking
type PathHandler struct {
	// handler is the underlying slog handler that receives masked records.
	handler slog.Handler

	// home is the absolute home directory to mask. Empty disables masking.
	home string
}

// NewPathHandler creates a new PathHandler wrapping the given handler.
// The home directory is resolved once at construction; if it cannot be
// resolved, masking is disabled and records pass through unchanged.
// If handler is nil, the returned PathHandler uses slog.Default().Handler().
func NewPathHandler(handler slog.Handler) *PathHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return &PathHandler{handler: handler, home: home}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *PathHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and passes it to the underlying handler.
func (h *PathHandler) Handle(ctx context.Context, r slog.Record) error {
	masked := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(h.maskAttr(a))
		return true
	})

	return h.handler.Handle(ctx, masked)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are masked before being added.
func (h *PathHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	maskedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		maskedAttrs[i] = h.maskAttr(a)
	}
	return &PathHandler{handler: h.handler.WithAttrs(maskedAttrs), home: h.home}
}

// WithGroup returns a new handler with the given group name.
func (h *PathHandler) WithGroup(name string) slog.Handler {
	return &PathHandler{handler: h.handler.WithGroup(name), home: h.home}
}

// maskAttr masks a single attribute, recursively handling groups.
func (h *PathHandler) maskAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		maskedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			maskedAttrs[i] = h.maskAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(maskedAttrs...)}
	}

	if a.Value.Kind() == slog.KindString {
		return slog.String(a.Key, maskHome(a.Value.String(), h.home))
	}

	return a
}

// maskHome replaces occurrences of the home directory in value with HomeMask.
// Only whole path components match: with home /home/alice, the value
// /home/alice/contracts is masked but /home/alicemirror is not. Error strings
// that embed a path mid-sentence are masked too.
func maskHome(value, home string) string {
	if home == "" {
		return value
	}
	if value == home {
		return HomeMask
	}
	sep := string(filepath.Separator)
	return strings.ReplaceAll(value, home+sep, HomeMask+sep)
}

// NewLogger creates a new slog.Logger writing human-readable output with
// home-directory masking.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger that can be used with slog.SetDefault() or passed
// to components that accept *slog.Logger.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	pathHandler := NewPathHandler(textHandler)

	return slog.New(pathHandler)
}

// NewJSONLogger creates a new slog.Logger that outputs JSON format with
// home-directory masking. Useful for structured log aggregation in CI.
//
// Parameters:
//   - w: The io.Writer to write log output to
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger configured for JSON output with masking.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	jsonHandler := slog.NewJSONHandler(w, opts)
	pathHandler := NewPathHandler(jsonHandler)

	return slog.New(pathHandler)
}
