package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/Spencerx/metrics-collector-service/pkg/domain/types"
)

type (
	ctxLoggerKey    struct{}
	ctxRequestIDKey struct{}
	ctxTimeKey      struct{}
)

// TimeFunc is the clock used for event receive times and cache expiry.
type TimeFunc func() time.Time

// With returns ctx carrying logger.
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// From returns the logger of ctx, or the default logger.
func From(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxLoggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return defaultLogger
}

// CtxRequestID returns the request ID of ctx. A new ID is generated and
// stored in the returned context if none is set.
func CtxRequestID(ctx context.Context) (types.RequestID, context.Context) {
	if id, ok := RequestIDFrom(ctx); ok {
		return id, ctx
	}
	id := types.NewRequestID()
	return id, context.WithValue(ctx, ctxRequestIDKey{}, id)
}

func RequestIDFrom(ctx context.Context) (types.RequestID, bool) {
	id, ok := ctx.Value(ctxRequestIDKey{}).(types.RequestID)
	return id, ok
}

// CtxWithTime overrides the clock seen by CtxTime.
func CtxWithTime(ctx context.Context, fn TimeFunc) context.Context {
	return context.WithValue(ctx, ctxTimeKey{}, fn)
}

func CtxTime(ctx context.Context) time.Time {
	if fn, ok := ctx.Value(ctxTimeKey{}).(TimeFunc); ok {
		return fn()
	}
	return time.Now()
}

// InheritContextValues copies request ID and clock from src into dst. The
// logger is not copied.
func InheritContextValues(dst, src context.Context) context.Context {
	if id, ok := RequestIDFrom(src); ok {
		dst = context.WithValue(dst, ctxRequestIDKey{}, id)
	}
	if fn, ok := src.Value(ctxTimeKey{}).(TimeFunc); ok {
		dst = CtxWithTime(dst, fn)
	}
	return dst
}
