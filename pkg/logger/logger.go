package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

type ctxKey int8

const (
	ctxKeyRequestID ctxKey = iota
	ctxKeyUserID
	ctxKeyPaymentID
	ctxKeyCustomerKey
)

// Handler enriches records with the identifiers stored in the context.
type Handler struct {
	slog.Handler
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	if v, ok := ctx.Value(ctxKeyRequestID).(string); ok && v != "" {
		record.Add("request_id", v)
	}

	if v, ok := ctx.Value(ctxKeyUserID).(string); ok && v != "" {
		record.Add("user_id", v)
	}

	if v, ok := ctx.Value(ctxKeyPaymentID).(string); ok && v != "" {
		record.Add("payment_id", v)
	}

	if v, ok := ctx.Value(ctxKeyCustomerKey).(string); ok && v != "" {
		record.Add("customer_key", v)
	}

	return h.Handler.Handle(ctx, record)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{h.Handler.WithAttrs(attrs)}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{h.Handler.WithGroup(name)}
}

// New creates the process logger and sets it as slog default.
func New(level, format string) (*slog.Logger, error) {
	return NewWithWriter(os.Stdout, level, format)
}

func NewWithWriter(w io.Writer, level, format string) (*slog.Logger, error) {
	var sLevel slog.Level

	err := sLevel.UnmarshalText([]byte(level))
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{
		Level: sLevel,
	}

	var h slog.Handler

	switch format {
	case "json", "":
		h = slog.NewJSONHandler(w, opts)
	case "text":
		h = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	l := slog.New(&Handler{h})

	slog.SetDefault(l)

	return l, nil
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, requestID)
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKeyUserID, userID)
}

func WithPaymentID(ctx context.Context, paymentID string) context.Context {
	return context.WithValue(ctx, ctxKeyPaymentID, paymentID)
}

func WithCustomerKey(ctx context.Context, customerKey string) context.Context {
	return context.WithValue(ctx, ctxKeyCustomerKey, customerKey)
}

func RequestIDFromCtx(ctx context.Context) string {
	requestID, ok := ctx.Value(ctxKeyRequestID).(string)
	if !ok {
		return ""
	}

	return requestID
}
