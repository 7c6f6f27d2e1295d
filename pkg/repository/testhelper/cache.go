package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/Spencerx/metrics-collector-service/pkg/domain/interfaces"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/logging"
	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
)

// TestCache runs all test cases for Cache
func TestCache(t *testing.T, cache interfaces.Cache) {
	t.Run("SetAndGet", func(t *testing.T) {
		TestCacheSetAndGet(t, cache)
	})
	t.Run("Expiry", func(t *testing.T) {
		TestCacheExpiry(t, cache)
	})
	t.Run("URLKey", func(t *testing.T) {
		TestCacheURLKey(t, cache)
	})
}

func TestCacheSetAndGet(t *testing.T, cache interfaces.Cache) {
	ctx := context.Background()
	key := "test-" + uuid.NewString()

	_, ok, err := cache.Get(ctx, key)
	gt.NoError(t, err)
	gt.False(t, ok)

	gt.NoError(t, cache.Set(ctx, key, []byte(`{"stars":1}`), time.Hour))
	value, ok, err := cache.Get(ctx, key)
	gt.NoError(t, err)
	gt.True(t, ok)
	gt.V(t, string(value)).Equal(`{"stars":1}`)

	// replaced wholesale
	gt.NoError(t, cache.Set(ctx, key, []byte(`{"stars":2}`), time.Hour))
	value, ok, err = cache.Get(ctx, key)
	gt.NoError(t, err)
	gt.True(t, ok)
	gt.V(t, string(value)).Equal(`{"stars":2}`)
}

func TestCacheExpiry(t *testing.T, cache interfaces.Cache) {
	now := time.Now()
	ctx := logging.CtxWithTime(context.Background(), func() time.Time { return now })
	key := "test-" + uuid.NewString()

	gt.NoError(t, cache.Set(ctx, key, []byte(`{}`), time.Minute))

	before := logging.CtxWithTime(context.Background(), func() time.Time { return now.Add(59 * time.Second) })
	_, ok, err := cache.Get(before, key)
	gt.NoError(t, err)
	gt.True(t, ok)

	after := logging.CtxWithTime(context.Background(), func() time.Time { return now.Add(time.Minute) })
	_, ok, err = cache.Get(after, key)
	gt.NoError(t, err)
	gt.False(t, ok)
}

func TestCacheURLKey(t *testing.T, cache interfaces.Cache) {
	ctx := context.Background()
	key := "repo-https://github.com/test-" + uuid.NewString()[:8] + "/repo?x=1#y"

	gt.NoError(t, cache.Set(ctx, key, []byte(`{"forks":3}`), time.Hour))
	value, ok, err := cache.Get(ctx, key)
	gt.NoError(t, err)
	gt.True(t, ok)
	gt.V(t, string(value)).Equal(`{"forks":3}`)
}
