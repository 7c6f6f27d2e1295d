package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/Spencerx/metrics-collector-service/pkg/domain/interfaces"
	"github.com/Spencerx/metrics-collector-service/pkg/domain/model"
	"github.com/Spencerx/metrics-collector-service/pkg/repository"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// EventStore keeps events in process memory. Grouped queries are computed on
// every call.
type EventStore struct {
	mu     sync.RWMutex
	events []*model.Event
}

var _ interfaces.EventStore = (*EventStore)(nil)

// NewEventStore creates a new in-memory event store
func NewEventStore() *EventStore {
	return &EventStore{}
}

func (x *EventStore) Insert(ctx context.Context, event *model.Event) error {
	if event == nil {
		return goerr.Wrap(repository.ErrInvalidInput, "event is nil")
	}

	copied := *event
	copied.ApplicationURIs = slices.Clone(event.ApplicationURIs)

	x.mu.Lock()
	defer x.mu.Unlock()
	x.events = append(x.events, &copied)

	return nil
}

func (x *EventStore) QueryGrouped(ctx context.Context, query model.GroupQuery) ([]model.GroupRow, error) {
	if query.View.Depth() == 0 {
		return nil, goerr.Wrap(repository.ErrInvalidInput, "unknown view", goerr.V("view", query.View))
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	return model.GroupEvents(query, x.events), nil
}

type cacheEntry struct {
	value     []byte
	expiresAt time.Time
}

// Cache is a TTL key-value store in process memory. Expired entries are
// dropped on the next write.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

var _ interfaces.Cache = (*Cache)(nil)

// NewCache creates a new in-memory cache
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
	}
}

func (x *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	now := logging.CtxTime(ctx)

	x.mu.RLock()
	defer x.mu.RUnlock()

	entry, ok := x.entries[key]
	if !ok || !now.Before(entry.expiresAt) {
		return nil, false, nil
	}
	return slices.Clone(entry.value), true, nil
}

func (x *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return goerr.Wrap(repository.ErrInvalidInput, "ttl must be positive", goerr.V("ttl", ttl))
	}
	now := logging.CtxTime(ctx)

	x.mu.Lock()
	defer x.mu.Unlock()

	for k, entry := range x.entries {
		if !now.Before(entry.expiresAt) {
			delete(x.entries, k)
		}
	}
	x.entries[key] = cacheEntry{
		value:     slices.Clone(value),
		expiresAt: now.Add(ttl),
	}

	return nil
}
