package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/Spencerx/metrics-collector-service/pkg/domain/model"
	"github.com/Spencerx/metrics-collector-service/pkg/domain/types"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// Overview returns one summary per repository url, with reputation merged in
// when a reputation source is configured, sorted by count descending.
func (x *UseCase) Overview(ctx context.Context) ([]*model.RepoSummary, error) {
	store, err := x.eventStore()
	if err != nil {
		return nil, err
	}

	rows, err := store.QueryGrouped(ctx, model.GroupQuery{View: model.ViewByRepo, Level: 3})
	if err != nil {
		return nil, goerr.Wrap(types.ErrStore, "failed to query deployments by repo", goerr.V("error", err.Error()))
	}

	set := model.FoldRows(rows)
	summaries := set.Sorted()
	x.mergeReputation(ctx, summaries)

	return summaries, nil
}

// mergeReputation fetches reputation of every summary concurrently. A failed
// lookup leaves that summary's reputation nil.
func (x *UseCase) mergeReputation(ctx context.Context, summaries []*model.RepoSummary) {
	rep := x.clients.Reputation()
	if rep == nil || !rep.Enabled() {
		return
	}

	var eg errgroup.Group
	eg.SetLimit(x.concurrency)

	for _, s := range summaries {
		if s.URL == "" {
			continue
		}
		eg.Go(func() error {
			data, err := rep.Fetch(ctx, s.URL)
			if err != nil {
				logging.From(ctx).Warn("failed to fetch reputation",
					slog.String("url", s.URL),
					slog.Any("error", err),
				)
				return nil
			}
			s.Reputation = data
			return nil
		})
	}

	// goroutines never return an error
	_ = eg.Wait()
}

// RepoDetail returns the summaries of every url sharing hash, each with badge
// and button links served from protocolAndHost.
func (x *UseCase) RepoDetail(ctx context.Context, hash types.URLHash, protocolAndHost string) ([]*model.RepoSummary, error) {
	if hash == "" {
		return nil, goerr.Wrap(types.ErrBadRequest, "hash is empty")
	}
	store, err := x.eventStore()
	if err != nil {
		return nil, err
	}

	rows, err := store.QueryGrouped(ctx, model.GroupQuery{View: model.ViewByRepoHash, Hash: hash, Level: 4})
	if err != nil {
		return nil, goerr.Wrap(types.ErrStore, "failed to query deployments by hash",
			goerr.V("hash", hash),
			goerr.V("error", err.Error()),
		)
	}

	summaries := model.FoldRows(rows).Sorted()
	for _, s := range summaries {
		s.RepoLinks = model.NewRepoLinks(protocolAndHost, s.URLHash, s.URL)
	}

	return summaries, nil
}

// RepoCount returns the total deployments recorded for hash. An unknown hash
// counts 0.
func (x *UseCase) RepoCount(ctx context.Context, hash types.URLHash) (int64, error) {
	if hash == "" {
		return 0, goerr.Wrap(types.ErrBadRequest, "hash is empty")
	}
	store, err := x.eventStore()
	if err != nil {
		return 0, err
	}

	rows, err := store.QueryGrouped(ctx, model.GroupQuery{View: model.ViewByRepoHash, Hash: hash, Level: 1})
	if err != nil {
		return 0, goerr.Wrap(types.ErrStore, "failed to count deployments",
			goerr.V("hash", hash),
			goerr.V("error", err.Error()),
		)
	}

	var count int64
	for _, row := range rows {
		count += row.Value
	}
	return count, nil
}

func (x *UseCase) Badge(ctx context.Context, hash types.URLHash, variant model.BadgeVariant) (*model.Badge, error) {
	count, err := x.RepoCount(ctx, hash)
	if err != nil {
		return nil, err
	}

	badge, ok := variant.Render(count)
	if !ok {
		return nil, goerr.Wrap(types.ErrBadRequest, "unknown badge variant", goerr.V("variant", variant))
	}
	return &badge, nil
}

// ListRepos returns distinct repository urls in store key order.
func (x *UseCase) ListRepos(ctx context.Context) ([]string, error) {
	store, err := x.eventStore()
	if err != nil {
		return nil, err
	}

	rows, err := store.QueryGrouped(ctx, model.GroupQuery{View: model.ViewByRepo, Level: 3})
	if err != nil {
		return nil, goerr.Wrap(types.ErrStore, "failed to query deployments by repo", goerr.V("error", err.Error()))
	}

	return model.FoldRows(rows).URLs(), nil
}

func (x *UseCase) Reputation(ctx context.Context, repo string) (json.RawMessage, error) {
	rep := x.clients.Reputation()
	if rep == nil || !rep.Enabled() {
		return nil, goerr.Wrap(types.ErrUnconfigured, "reputation source is not configured")
	}
	if repo == "" {
		return nil, goerr.Wrap(types.ErrBadRequest, "repo is empty")
	}

	data, err := rep.Fetch(ctx, repo)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get reputation", goerr.V("repo", repo))
	}
	return data, nil
}
