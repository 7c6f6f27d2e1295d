package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Spencerx/metrics-collector-service/pkg/domain/model"
	"github.com/Spencerx/metrics-collector-service/pkg/repository"
	"github.com/Spencerx/metrics-collector-service/pkg/repository/memory"
	"github.com/Spencerx/metrics-collector-service/pkg/repository/testhelper"
	"github.com/m-mizutani/gt"
)

func TestMemoryEventStore(t *testing.T) {
	testhelper.TestEventStore(t, memory.NewEventStore())
}

func TestMemoryCache(t *testing.T) {
	testhelper.TestCache(t, memory.NewCache())
}

func TestInsertCopiesEvent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewEventStore()

	event := gt.R1(model.NewEvent(&model.TrackInput{
		RepositoryURL: "https://github.com/a/b",
	}, time.Date(2016, 3, 1, 0, 0, 0, 0, time.UTC))).NoError(t)
	gt.NoError(t, store.Insert(ctx, event))

	event.RepositoryURL = "mutated"

	rows := gt.R1(store.QueryGrouped(ctx, model.GroupQuery{View: model.ViewByRepo, Level: 1})).NoError(t)
	gt.A(t, rows).Length(1)
	gt.V(t, rows[0].Key.URL).Equal("https://github.com/a/b")
}

func TestQueryUnknownView(t *testing.T) {
	_, err := memory.NewEventStore().QueryGrouped(context.Background(), model.GroupQuery{View: "by_space"})
	gt.True(t, errors.Is(err, repository.ErrInvalidInput))
}

func TestCacheRejectsZeroTTL(t *testing.T) {
	err := memory.NewCache().Set(context.Background(), "k", []byte("{}"), 0)
	gt.True(t, errors.Is(err, repository.ErrInvalidInput))
}
