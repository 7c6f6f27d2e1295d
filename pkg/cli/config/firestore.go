package config

import (
	"context"
	"log/slog"

	"github.com/Spencerx/metrics-collector-service/pkg/domain/interfaces"
	"github.com/Spencerx/metrics-collector-service/pkg/repository/firestore"
	"github.com/Spencerx/metrics-collector-service/pkg/repository/memory"
	"github.com/urfave/cli/v3"
)

type Firestore struct {
	projectID  string
	databaseID string
	collection string
}

func (x *Firestore) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore project ID for reputation cache (optional)",
			Category:    "Firestore",
			Sources:     cli.EnvVars("DEPTRACK_FIRESTORE_PROJECT_ID"),
			Destination: &x.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore database ID",
			Category:    "Firestore",
			Sources:     cli.EnvVars("DEPTRACK_FIRESTORE_DATABASE_ID"),
			Value:       "(default)",
			Destination: &x.databaseID,
		},
		&cli.StringFlag{
			Name:        "firestore-collection",
			Usage:       "Firestore collection of reputation cache",
			Category:    "Firestore",
			Sources:     cli.EnvVars("DEPTRACK_FIRESTORE_COLLECTION"),
			Value:       firestore.DefaultCollection,
			Destination: &x.collection,
		},
	}
}

func (x *Firestore) Enabled() bool {
	return x.projectID != ""
}

func (x *Firestore) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("projectID", x.projectID),
		slog.Any("databaseID", x.databaseID),
		slog.Any("collection", x.collection),
	)
}

// NewCache returns a Firestore backed cache, or an in-memory cache if
// Firestore is not configured.
func (x *Firestore) NewCache(ctx context.Context) (interfaces.Cache, error) {
	if !x.Enabled() {
		return memory.NewCache(), nil
	}
	cache, err := firestore.New(ctx, x.projectID, x.databaseID, x.collection)
	if err != nil {
		return nil, err
	}
	return cache, nil
}
