package interfaces

//go:generate moq -out ../mock/infra.go -pkg mock . BigQuery ReputationSource Reputation

import (
	"context"
	"encoding/json"

	"cloud.google.com/go/bigquery"
)

type BigQuery interface {
	Insert(ctx context.Context, schema bigquery.Schema, data any) error

	GetMetadata(ctx context.Context) (*bigquery.TableMetadata, error)
	UpdateTable(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error
	CreateTable(ctx context.Context, md *bigquery.TableMetadata) error
}

// ReputationSource fetches raw reputation payload (stars, commits, ...) of a
// repository from a third party.
type ReputationSource interface {
	Get(ctx context.Context, repo string) (json.RawMessage, error)
}

// Reputation is the cached reputation lookup used by the aggregator.
type Reputation interface {
	// Enabled reports whether a source is configured. Fetch on a disabled
	// client returns nil without error.
	Enabled() bool
	Fetch(ctx context.Context, repo string) (json.RawMessage, error)
}
