package interfaces

//go:generate moq -out ../mock/usecase.go -pkg mock . UseCase

import (
	"context"
	"encoding/json"
	"io"

	"github.com/Spencerx/metrics-collector-service/pkg/domain/model"
	"github.com/Spencerx/metrics-collector-service/pkg/domain/types"
)

type UseCase interface {
	Track(ctx context.Context, input *model.TrackInput) error

	Overview(ctx context.Context) ([]*model.RepoSummary, error)
	RepoDetail(ctx context.Context, hash types.URLHash, protocolAndHost string) ([]*model.RepoSummary, error)
	RepoCount(ctx context.Context, hash types.URLHash) (int64, error)
	Badge(ctx context.Context, hash types.URLHash, variant model.BadgeVariant) (*model.Badge, error)
	ListRepos(ctx context.Context) ([]string, error)
	ExportCSV(ctx context.Context, w io.Writer) error

	Reputation(ctx context.Context, repo string) (json.RawMessage, error)
}
