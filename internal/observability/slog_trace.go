package observability

import (
	"context"
	"log/slog"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/actorctx"
	"go.opentelemetry.io/otel/trace"
)

// contextHandler copies request-scoped identity out of ctx onto each
// record: the active span, and the calling account once auth has run.
type contextHandler struct {
	next slog.Handler
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(slog.String("trace_id", sc.TraceID().String()), slog.String("span_id", sc.SpanID().String()))
	}
	if a, ok := actorctx.From(ctx); ok {
		r.AddAttrs(slog.String("account_id", a.AccountID), slog.String("role", string(a.Role)))
	}
	return h.next.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{next: h.next.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{next: h.next.WithGroup(name)}
}
