package panel

import (
	"context"
	"errors"
	"log/slog"
)

// Tee fans one slog stream out to the primary handler and the panel's
// capture handler, so enabling the panel never silences normal logs.
func Tee(primary slog.Handler, p *Panel) slog.Handler {
	return &teeHandler{primary: primary, capture: p.Handler()}
}

type teeHandler struct {
	primary slog.Handler
	capture slog.Handler
}

func (h *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.primary.Enabled(ctx, level) || h.capture.Enabled(ctx, level)
}

func (h *teeHandler) Handle(ctx context.Context, record slog.Record) error {
	var primaryErr error
	if h.primary.Enabled(ctx, record.Level) {
		primaryErr = h.primary.Handle(ctx, record.Clone())
	}
	captureErr := h.capture.Handle(ctx, record)
	return errors.Join(primaryErr, captureErr)
}

func (h *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &teeHandler{primary: h.primary.WithAttrs(attrs), capture: h.capture.WithAttrs(attrs)}
}

func (h *teeHandler) WithGroup(name string) slog.Handler {
	return &teeHandler{primary: h.primary.WithGroup(name), capture: h.capture.WithGroup(name)}
}
