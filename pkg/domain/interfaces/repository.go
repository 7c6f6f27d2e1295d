package interfaces

import (
	"context"
	"time"

	"github.com/Spencerx/metrics-collector-service/pkg/domain/model"
)

//go:generate moq -out ../mock/repository.go -pkg mock . EventStore Cache

// EventStore is an append-only event log with a grouped range query.
type EventStore interface {
	Insert(ctx context.Context, event *model.Event) error
	// QueryGrouped returns rows ordered by key.
	QueryGrouped(ctx context.Context, query model.GroupQuery) ([]model.GroupRow, error)
}

// Cache is a TTL key-value store. Entries are immutable once written and
// replaced wholesale on refresh.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
