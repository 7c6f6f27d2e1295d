package config

import (
	"context"
	"log/slog"

	"github.com/Spencerx/metrics-collector-service/pkg/domain/interfaces"
	"github.com/Spencerx/metrics-collector-service/pkg/repository/memory"
	"github.com/Spencerx/metrics-collector-service/pkg/repository/postgres"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/logging"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

type Database struct {
	dsn     string `masq:"secret"`
	migrate bool
}

func (x *Database) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "database-url",
			Usage:       "PostgreSQL connection string. In-memory store is used if not set",
			Category:    "Database",
			Destination: &x.dsn,
			Sources:     cli.EnvVars("DEPTRACK_DATABASE_URL", "DATABASE_URL"),
		},
		&cli.BoolFlag{
			Name:        "database-migrate",
			Usage:       "Create events table and indexes on startup",
			Category:    "Database",
			Destination: &x.migrate,
			Sources:     cli.EnvVars("DEPTRACK_DATABASE_MIGRATE"),
			Value:       true,
		},
	}
}

func (x *Database) Enabled() bool {
	return x.dsn != ""
}

// NewEventStore returns the configured store and a function to release it.
func (x *Database) NewEventStore(ctx context.Context) (interfaces.EventStore, func(), error) {
	if !x.Enabled() {
		logging.From(ctx).Warn("database is not configured, events are kept in memory")
		return memory.NewEventStore(), func() {}, nil
	}

	store, err := postgres.New(ctx, x.dsn)
	if err != nil {
		return nil, nil, err
	}
	closer := func() { safe.Close(store) }

	if x.migrate {
		if err := store.Migrate(ctx); err != nil {
			closer()
			return nil, nil, err
		}
	}

	return store, closer, nil
}

func (x *Database) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("enabled", x.Enabled()),
		slog.Bool("migrate", x.migrate),
	)
}
