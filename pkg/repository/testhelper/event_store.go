package testhelper

import (
	"context"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/Spencerx/metrics-collector-service/pkg/domain/interfaces"
	"github.com/Spencerx/metrics-collector-service/pkg/domain/model"
	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
)

// TestEventStore runs all test cases for EventStore. Each case uses unique
// repository URLs so the store may be shared with other data.
func TestEventStore(t *testing.T, store interfaces.EventStore) {
	t.Run("GroupByRepo", func(t *testing.T) {
		TestGroupByRepo(t, store)
	})
	t.Run("GroupByRepoHash", func(t *testing.T) {
		TestGroupByRepoHash(t, store)
	})
	t.Run("CountByHash", func(t *testing.T) {
		TestCountByHash(t, store)
	})
	t.Run("EventWithoutURL", func(t *testing.T) {
		TestEventWithoutURL(t, store)
	})
}

func uniqueURL() string {
	return fmt.Sprintf("https://github.com/test-%s/repo", uuid.New().String()[:8])
}

func insert(t *testing.T, store interfaces.EventStore, repoURL string, at time.Time) {
	t.Helper()
	event := gt.R1(model.NewEvent(&model.TrackInput{
		RepositoryURL:   repoURL,
		ApplicationName: "app",
		ApplicationURIs: model.StringList{"app.example.com"},
	}, at)).NoError(t)
	gt.NoError(t, store.Insert(context.Background(), event))
}

func rowsOf(rows []model.GroupRow, repoURL string) []model.GroupRow {
	var out []model.GroupRow
	for _, row := range rows {
		if row.Key.URL == repoURL {
			out = append(out, row)
		}
	}
	return out
}

func month(year int, m time.Month) time.Time {
	return time.Date(year, m, 15, 12, 0, 0, 0, time.UTC)
}

// TestGroupByRepo checks by_repo rows at level 3 and their key order
func TestGroupByRepo(t *testing.T, store interfaces.EventStore) {
	ctx := context.Background()
	repoURL := uniqueURL()

	insert(t, store, repoURL, month(2016, time.March))
	insert(t, store, repoURL, month(2016, time.March))
	insert(t, store, repoURL, month(2016, time.January))
	insert(t, store, repoURL, month(2015, time.December))

	rows := gt.R1(store.QueryGrouped(ctx, model.GroupQuery{
		View:  model.ViewByRepo,
		Level: 3,
	})).NoError(t)

	got := rowsOf(rows, repoURL)
	gt.A(t, got).Length(3)
	gt.V(t, got[0]).Equal(model.GroupRow{Key: model.GroupKey{URL: repoURL, Year: 2015, Month: 12}, Value: 1})
	gt.V(t, got[1]).Equal(model.GroupRow{Key: model.GroupKey{URL: repoURL, Year: 2016, Month: 1}, Value: 1})
	gt.V(t, got[2]).Equal(model.GroupRow{Key: model.GroupKey{URL: repoURL, Year: 2016, Month: 3}, Value: 2})

	gt.True(t, slices.IsSortedFunc(rows, func(a, b model.GroupRow) int {
		return model.CompareKeys(model.ViewByRepo, a.Key, b.Key)
	}))
}

// TestGroupByRepoHash checks a hash range query at level 4
func TestGroupByRepoHash(t *testing.T, store interfaces.EventStore) {
	ctx := context.Background()
	repoURL := uniqueURL()
	other := uniqueURL()
	hash := model.HashURL(repoURL)

	insert(t, store, repoURL, month(2016, time.April))
	insert(t, store, repoURL, month(2016, time.May))
	insert(t, store, repoURL, month(2016, time.May))
	insert(t, store, other, month(2016, time.May))

	rows := gt.R1(store.QueryGrouped(ctx, model.GroupQuery{
		View:  model.ViewByRepoHash,
		Hash:  hash,
		Level: 4,
	})).NoError(t)

	gt.A(t, rows).Length(2)
	gt.V(t, rows[0]).Equal(model.GroupRow{Key: model.GroupKey{Hash: hash, URL: repoURL, Year: 2016, Month: 4}, Value: 1})
	gt.V(t, rows[1]).Equal(model.GroupRow{Key: model.GroupKey{Hash: hash, URL: repoURL, Year: 2016, Month: 5}, Value: 2})
}

// TestCountByHash checks level 1 reduces a hash to one row
func TestCountByHash(t *testing.T, store interfaces.EventStore) {
	ctx := context.Background()
	repoURL := uniqueURL()
	hash := model.HashURL(repoURL)

	for i := 0; i < 3; i++ {
		insert(t, store, repoURL, month(2016, time.Month(i+1)))
	}

	rows := gt.R1(store.QueryGrouped(ctx, model.GroupQuery{
		View:  model.ViewByRepoHash,
		Hash:  hash,
		Level: 1,
	})).NoError(t)
	gt.A(t, rows).Length(1)
	gt.V(t, rows[0]).Equal(model.GroupRow{Key: model.GroupKey{Hash: hash}, Value: 3})

	missing := gt.R1(store.QueryGrouped(ctx, model.GroupQuery{
		View:  model.ViewByRepoHash,
		Hash:  model.HashURL(uniqueURL()),
		Level: 1,
	})).NoError(t)
	gt.A(t, missing).Length(0)
}

// TestEventWithoutURL checks events without repository_url are grouped under
// the empty url and never appear in the hash view
func TestEventWithoutURL(t *testing.T, store interfaces.EventStore) {
	ctx := context.Background()

	insert(t, store, "", month(1999, time.July))

	rows := gt.R1(store.QueryGrouped(ctx, model.GroupQuery{
		View:  model.ViewByRepo,
		Level: 3,
	})).NoError(t)

	var found bool
	for _, row := range rows {
		if row.Key.URL == "" && row.Key.Year == 1999 && row.Key.Month == 7 {
			found = true
			gt.True(t, row.Value >= 1)
		}
	}
	gt.True(t, found)

	hashRows := gt.R1(store.QueryGrouped(ctx, model.GroupQuery{
		View:  model.ViewByRepoHash,
		Level: 4,
	})).NoError(t)
	for _, row := range hashRows {
		gt.V(t, row.Key.Hash).NotEqual("")
	}
}
