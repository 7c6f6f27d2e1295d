package postgres_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Spencerx/metrics-collector-service/pkg/domain/model"
	"github.com/Spencerx/metrics-collector-service/pkg/repository"
	"github.com/Spencerx/metrics-collector-service/pkg/repository/postgres"
	"github.com/Spencerx/metrics-collector-service/pkg/repository/testhelper"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/testutil"
	"github.com/m-mizutani/gt"
)

func TestPostgresEventStore(t *testing.T) {
	dsn := testutil.GetEnvOrSkip(t, "TEST_POSTGRES_DSN")

	ctx := context.Background()
	store := gt.R1(postgres.New(ctx, dsn)).NoError(t)
	defer func() { gt.NoError(t, store.Close()) }()

	gt.NoError(t, store.Migrate(ctx))
	// idempotent
	gt.NoError(t, store.Migrate(ctx))

	testhelper.TestEventStore(t, store)
}

func TestNewRequiresDSN(t *testing.T) {
	_, err := postgres.New(context.Background(), "")
	gt.True(t, errors.Is(err, repository.ErrInvalidInput))
}

func TestBuildGroupQuery(t *testing.T) {
	t.Run("by_repo level 3", func(t *testing.T) {
		stmt, args, err := postgres.BuildGroupQuery(model.GroupQuery{View: model.ViewByRepo, Level: 3})
		gt.NoError(t, err)
		gt.A(t, args).Length(0)
		gt.S(t, stmt).Contains("GROUP BY repository_url, EXTRACT(YEAR")
		gt.S(t, stmt).Contains(`ORDER BY repository_url COLLATE "C" NULLS FIRST`)
		gt.False(t, strings.Contains(stmt, "WHERE"))
	})

	t.Run("by_repo_hash with hash at level 1", func(t *testing.T) {
		hash := model.HashURL("https://github.com/a/b")
		stmt, args, err := postgres.BuildGroupQuery(model.GroupQuery{View: model.ViewByRepoHash, Hash: hash, Level: 1})
		gt.NoError(t, err)
		gt.A(t, args).Length(1)
		gt.V(t, args[0]).Equal(any(hash.String()))
		gt.S(t, stmt).Contains("WHERE repository_url_hash IS NOT NULL AND repository_url_hash = $1")
		gt.S(t, stmt).Contains("GROUP BY repository_url_hash ORDER BY")
		gt.False(t, strings.Contains(stmt, "EXTRACT"))
	})

	t.Run("level is clamped to view depth", func(t *testing.T) {
		deep, _, err := postgres.BuildGroupQuery(model.GroupQuery{View: model.ViewByRepo, Level: 9})
		gt.NoError(t, err)
		exact, _, err := postgres.BuildGroupQuery(model.GroupQuery{View: model.ViewByRepo, Level: 3})
		gt.NoError(t, err)
		gt.V(t, deep).Equal(exact)
	})

	t.Run("level 0 reduces everything", func(t *testing.T) {
		stmt, _, err := postgres.BuildGroupQuery(model.GroupQuery{View: model.ViewByRepo})
		gt.NoError(t, err)
		gt.V(t, stmt).Equal("SELECT COUNT(*) FROM events HAVING COUNT(*) > 0")
	})

	t.Run("unknown view", func(t *testing.T) {
		_, _, err := postgres.BuildGroupQuery(model.GroupQuery{View: "by_space", Level: 1})
		gt.True(t, errors.Is(err, repository.ErrInvalidInput))
	})
}
