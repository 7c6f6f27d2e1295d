package server_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/Spencerx/metrics-collector-service/pkg/controller/server"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/logging"
	"github.com/m-mizutani/gt"
)

func TestDetachContext(t *testing.T) {
	logger := slog.Default().With("component", "track")
	fixedTime := time.Date(2016, 3, 1, 9, 0, 0, 0, time.UTC)

	ctx, cancel := context.WithCancel(context.Background())
	ctx = logging.With(ctx, logger)
	reqID, ctx := logging.CtxRequestID(ctx)
	ctx = logging.CtxWithTime(ctx, func() time.Time { return fixedTime })

	detached := server.DetachContext(ctx)
	cancel()

	t.Run("survives cancellation of the request", func(t *testing.T) {
		gt.V(t, ctx.Err()).Equal(context.Canceled)
		gt.NoError(t, detached.Err())
	})

	t.Run("inherits request values", func(t *testing.T) {
		gt.V(t, logging.From(detached)).Equal(logger)

		got, ok := logging.RequestIDFrom(detached)
		gt.True(t, ok)
		gt.V(t, got).Equal(reqID)

		gt.V(t, logging.CtxTime(detached)).Equal(fixedTime)
	})
}

func TestIdentityFrom(t *testing.T) {
	gt.True(t, server.IdentityFrom(context.Background()) == nil)
}
