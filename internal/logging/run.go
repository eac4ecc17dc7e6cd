package logging

import (
	"context"
	"log/slog"
)

type runKey struct{}

// WithRunID tags ctx with a catalog run identifier. Records logged through a
// RunHandler with that context carry it as the run_id attribute.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runKey{}, id)
}

// RunID returns the run identifier stored in ctx, if any.
func RunID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runKey{}).(string)
	return id, ok && id != ""
}

// RunHandler copies the run identifier from the context onto each record.
type RunHandler struct {
	inner slog.Handler
}

// NewRunHandler wraps inner.
func NewRunHandler(inner slog.Handler) *RunHandler {
	return &RunHandler{inner: inner}
}

func (h *RunHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *RunHandler) Handle(ctx context.Context, r slog.Record) error {
	if id, ok := RunID(ctx); ok {
		r = r.Clone()
		r.AddAttrs(slog.String("run_id", id))
	}
	return h.inner.Handle(ctx, r)
}

func (h *RunHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &RunHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *RunHandler) WithGroup(name string) slog.Handler {
	return &RunHandler{inner: h.inner.WithGroup(name)}
}
