package log

import (
	"context"
	"io"
	"log/slog"
)

// MaxAttrLen is the longest string attribute value that reaches the
// log untruncated.
const MaxAttrLen = 256

// truncationMark is appended to a value that has been cut.
const truncationMark = "...(truncated)"

// TruncatingHandler wraps an slog.Handler and caps oversized string
// attribute values. It keeps log lines readable when an attribute
// carries page bodies or morgue text.
type TruncatingHandler struct {
	handler slog.Handler
	maxLen  int
}

// NewTruncatingHandler creates a TruncatingHandler over the given
// handler. If handler is nil, slog.Default().Handler() is used.
func NewTruncatingHandler(handler slog.Handler) *TruncatingHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &TruncatingHandler{handler: handler, maxLen: MaxAttrLen}
}

// Enabled reports whether the handler handles records at the given
// level. It delegates to the underlying handler.
func (h *TruncatingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle truncates the record's attributes and passes it on.
func (h *TruncatingHandler) Handle(ctx context.Context, r slog.Record) error {
	truncated := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		truncated.AddAttrs(h.truncateAttr(a))
		return true
	})
	return h.handler.Handle(ctx, truncated)
}

// WithAttrs returns a new handler with the given attributes added,
// truncated first.
func (h *TruncatingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = h.truncateAttr(a)
	}
	return &TruncatingHandler{handler: h.handler.WithAttrs(out), maxLen: h.maxLen}
}

// WithGroup returns a new handler with the given group name.
func (h *TruncatingHandler) WithGroup(name string) slog.Handler {
	return &TruncatingHandler{handler: h.handler.WithGroup(name), maxLen: h.maxLen}
}

// truncateAttr caps a single attribute, recursing into groups.
func (h *TruncatingHandler) truncateAttr(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindGroup:
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			out[i] = h.truncateAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	case slog.KindString:
		v := a.Value.String()
		if len(v) > h.maxLen {
			return slog.String(a.Key, v[:h.maxLen]+truncationMark)
		}
	}
	return a
}

// NewLogger creates a text-format logger writing to w. Verbose enables
// debug-level output; otherwise the level is info.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	return slog.New(NewTruncatingHandler(slog.NewTextHandler(w, opts)))
}

// NewJSONLogger creates a JSON-format logger writing to w, for log
// aggregation setups.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	return slog.New(NewTruncatingHandler(slog.NewJSONHandler(w, opts)))
}
