package server

import (
	"context"

	"github.com/Spencerx/metrics-collector-service/pkg/domain/model"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/logging"
)

// DetachContext creates a new context.Background() based context that inherits
// logger, request ID, and time function from the original context.
// Ingest runs on it so that a client hanging up mid-request does not abort a
// write that has already started.
func DetachContext(ctx context.Context) context.Context {
	bgCtx := context.Background()

	bgCtx = logging.With(bgCtx, logging.From(ctx))
	bgCtx = logging.InheritContextValues(bgCtx, ctx)

	return bgCtx
}

type ctxIdentityKey struct{}

func withIdentity(ctx context.Context, identity *model.Identity) context.Context {
	return context.WithValue(ctx, ctxIdentityKey{}, identity)
}

// IdentityFrom returns the caller identity set by the authenticate middleware.
func IdentityFrom(ctx context.Context) *model.Identity {
	if identity, ok := ctx.Value(ctxIdentityKey{}).(*model.Identity); ok {
		return identity
	}
	return nil
}
