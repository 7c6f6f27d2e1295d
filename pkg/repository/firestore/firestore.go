package firestore

import (
	"context"
	"net/url"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/Spencerx/metrics-collector-service/pkg/domain/interfaces"
	"github.com/Spencerx/metrics-collector-service/pkg/repository"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	DefaultCollection = "reputation_cache"

	// Firestore rejects document IDs longer than 1500 bytes
	maxDocIDSize = 1500
)

// Cache stores reputation payloads as Firestore documents. Expiry is checked
// on read; a Firestore TTL policy on expires_at may be set up to purge old
// documents.
type Cache struct {
	client     *firestore.Client
	collection string
}

var _ interfaces.Cache = (*Cache)(nil)

type cacheDoc struct {
	Key       string    `firestore:"key"`
	Value     string    `firestore:"value"`
	ExpiresAt time.Time `firestore:"expires_at"`
}

// New creates a new Firestore-based cache
func New(ctx context.Context, projectID, databaseID, collection string) (*Cache, error) {
	var client *firestore.Client
	var err error

	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}

	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID),
		)
	}

	if collection == "" {
		collection = DefaultCollection
	}

	return &Cache{
		client:     client,
		collection: collection,
	}, nil
}

func (x *Cache) Close() error {
	return x.client.Close()
}

// ToDocID converts a cache key to a Firestore-safe document ID. Keys contain
// repository URLs, so "/" and other reserved characters are escaped.
func ToDocID(key string) (string, error) {
	if key == "" {
		return "", goerr.Wrap(repository.ErrInvalidInput, "cache key is empty")
	}

	id := url.PathEscape(key)
	switch id {
	case ".", "..":
		id = url.PathEscape("%" + id)
	}
	if len(id) > maxDocIDSize {
		return "", goerr.Wrap(repository.ErrInvalidInput, "cache key is too long",
			goerr.V("key", key),
			goerr.V("size", len(id)),
		)
	}

	return id, nil
}

func (x *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	docID, err := ToDocID(key)
	if err != nil {
		return nil, false, err
	}

	snap, err := x.client.Collection(x.collection).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, false, nil
		}
		return nil, false, goerr.Wrap(err, "failed to get cache entry", goerr.V("key", key))
	}

	var doc cacheDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, false, goerr.Wrap(err, "failed to decode cache entry", goerr.V("key", key))
	}

	if !logging.CtxTime(ctx).Before(doc.ExpiresAt) {
		return nil, false, nil
	}

	return []byte(doc.Value), true, nil
}

func (x *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return goerr.Wrap(repository.ErrInvalidInput, "ttl must be positive", goerr.V("ttl", ttl))
	}
	docID, err := ToDocID(key)
	if err != nil {
		return err
	}

	doc := cacheDoc{
		Key:       key,
		Value:     string(value),
		ExpiresAt: logging.CtxTime(ctx).Add(ttl),
	}
	if _, err := x.client.Collection(x.collection).Doc(docID).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to set cache entry", goerr.V("key", key))
	}

	return nil
}
