package xdi2

import (
	"context"
	"log/slog"
)

/*
trace.go wires the ambient logging concern: a thin wrapper over
log/slog, following the pack's WithLogger convention (a nil logger
disables logging entirely: the slog call is skipped, though any
attributes are already built by the caller before the call).
*/

// logHandle wraps a *slog.Logger; a nil *logHandle or a logHandle
// with a nil inner logger is a valid, inert "no logging" value.
type logHandle struct {
	l *slog.Logger
}

// NewLogHandle wraps l for use with WithLogger. Passing a nil l
// produces a handle that silently discards every call.
func NewLogHandle(l *slog.Logger) *logHandle {
	return &logHandle{l: l}
}

func (h *logHandle) enabled(ctx context.Context, level slog.Level) bool {
	return h != nil && h.l != nil && h.l.Enabled(ctx, level)
}

func (h *logHandle) debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	if !h.enabled(ctx, slog.LevelDebug) {
		return
	}
	h.l.LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}

func (h *logHandle) info(ctx context.Context, msg string, attrs ...slog.Attr) {
	if !h.enabled(ctx, slog.LevelInfo) {
		return
	}
	h.l.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (h *logHandle) warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	if !h.enabled(ctx, slog.LevelWarn) {
		return
	}
	h.l.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
}

func (h *logHandle) error(ctx context.Context, msg string, attrs ...slog.Attr) {
	if !h.enabled(ctx, slog.LevelError) {
		return
	}
	h.l.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}
