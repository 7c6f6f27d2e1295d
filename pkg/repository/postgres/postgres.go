package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Spencerx/metrics-collector-service/pkg/domain/interfaces"
	"github.com/Spencerx/metrics-collector-service/pkg/domain/model"
	"github.com/Spencerx/metrics-collector-service/pkg/domain/types"
	"github.com/Spencerx/metrics-collector-service/pkg/repository"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/safe"
	"github.com/lib/pq"
	"github.com/m-mizutani/goerr/v2"
)

// EventStore persists events in a PostgreSQL table and answers grouped
// queries with GROUP BY.
type EventStore struct {
	db *sql.DB
}

var _ interfaces.EventStore = (*EventStore)(nil)

// New opens a connection pool for dsn and checks it is reachable.
func New(ctx context.Context, dsn string) (*EventStore, error) {
	if dsn == "" {
		return nil, goerr.Wrap(repository.ErrInvalidInput, "database DSN is empty")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open database")
	}
	if err := db.PingContext(ctx); err != nil {
		safe.Close(db)
		return nil, goerr.Wrap(err, "failed to connect to database")
	}

	return &EventStore{db: db}, nil
}

// NewWithDB wraps an already opened database handle.
func NewWithDB(db *sql.DB) *EventStore {
	return &EventStore{db: db}
}

func (x *EventStore) Close() error {
	return x.db.Close()
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS events (
		id                  BIGSERIAL PRIMARY KEY,
		date_received       TIMESTAMPTZ NOT NULL,
		date_sent           TEXT,
		repository_url      TEXT,
		repository_url_hash TEXT,
		code_version        TEXT,
		application_name    TEXT,
		application_version TEXT,
		space_id            TEXT,
		application_uris    TEXT[]
	)`,
	`CREATE INDEX IF NOT EXISTS events_repository_url_hash_idx ON events (repository_url_hash)`,
	`CREATE INDEX IF NOT EXISTS events_repository_url_idx ON events (repository_url)`,
}

// Migrate creates the events table and its indexes.
func (x *EventStore) Migrate(ctx context.Context) error {
	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to begin migration")
	}
	defer safe.Rollback(tx)

	for _, stmt := range migrations {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return goerr.Wrap(err, "failed to migrate", goerr.V("stmt", stmt))
		}
	}

	if err := tx.Commit(); err != nil {
		return goerr.Wrap(err, "failed to commit migration")
	}
	return nil
}

const insertEvent = `INSERT INTO events (
	date_received, date_sent, repository_url, repository_url_hash, code_version,
	application_name, application_version, space_id, application_uris
) VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''),
	NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9)`

func (x *EventStore) Insert(ctx context.Context, event *model.Event) error {
	if event == nil {
		return goerr.Wrap(repository.ErrInvalidInput, "event is nil")
	}

	var uris any
	if len(event.ApplicationURIs) > 0 {
		uris = pq.Array(event.ApplicationURIs)
	}

	if _, err := x.db.ExecContext(ctx, insertEvent,
		event.DateReceived.UTC(),
		event.DateSent,
		event.RepositoryURL,
		event.RepositoryURLHash.String(),
		event.CodeVersion,
		event.ApplicationName,
		event.ApplicationVersion,
		event.SpaceID,
		uris,
	); err != nil {
		return goerr.Wrap(err, "failed to insert event", goerr.V("repository_url", event.RepositoryURL))
	}

	return nil
}

type column struct {
	expr  string
	order string
}

var (
	colHash  = column{expr: "repository_url_hash", order: `repository_url_hash COLLATE "C" NULLS FIRST`}
	colURL   = column{expr: "repository_url", order: `repository_url COLLATE "C" NULLS FIRST`}
	colYear  = column{expr: "EXTRACT(YEAR FROM date_received AT TIME ZONE 'UTC')::int"}
	colMonth = column{expr: "EXTRACT(MONTH FROM date_received AT TIME ZONE 'UTC')::int"}
)

func viewColumns(view model.View) []column {
	switch view {
	case model.ViewByRepo:
		return []column{colURL, colYear, colMonth}
	case model.ViewByRepoHash:
		return []column{colHash, colURL, colYear, colMonth}
	default:
		return nil
	}
}

// buildGroupQuery returns SQL selecting the first level key columns of the
// view and a count, grouped and ordered by those columns.
func buildGroupQuery(query model.GroupQuery) (string, []any, error) {
	cols := viewColumns(query.View)
	if cols == nil {
		return "", nil, goerr.Wrap(repository.ErrInvalidInput, "unknown view", goerr.V("view", query.View))
	}
	level := min(max(query.Level, 0), len(cols))
	cols = cols[:level]

	var (
		where []string
		args  []any
	)
	if query.View == model.ViewByRepoHash {
		where = append(where, "repository_url_hash IS NOT NULL")
		if query.Hash != "" {
			args = append(args, query.Hash.String())
			where = append(where, "repository_url_hash = $1")
		}
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	for _, c := range cols {
		sb.WriteString(c.expr)
		sb.WriteString(", ")
	}
	sb.WriteString("COUNT(*) FROM events")
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	if level > 0 {
		group := make([]string, 0, level)
		order := make([]string, 0, level)
		for _, c := range cols {
			group = append(group, c.expr)
			if c.order != "" {
				order = append(order, c.order)
			} else {
				order = append(order, c.expr)
			}
		}
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(group, ", "))
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(order, ", "))
	} else {
		sb.WriteString(" HAVING COUNT(*) > 0")
	}

	return sb.String(), args, nil
}

func (x *EventStore) QueryGrouped(ctx context.Context, query model.GroupQuery) ([]model.GroupRow, error) {
	stmt, args, err := buildGroupQuery(query)
	if err != nil {
		return nil, err
	}

	rows, err := x.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query grouped events", goerr.V("query", query))
	}
	defer safe.Close(rows)

	cols := viewColumns(query.View)
	level := min(max(query.Level, 0), len(cols))

	var result []model.GroupRow
	for rows.Next() {
		var (
			hash, url   sql.NullString
			year, month sql.NullInt64
			count       int64
		)
		dest := make([]any, 0, level+1)
		for _, c := range cols[:level] {
			switch c {
			case colHash:
				dest = append(dest, &hash)
			case colURL:
				dest = append(dest, &url)
			case colYear:
				dest = append(dest, &year)
			case colMonth:
				dest = append(dest, &month)
			}
		}
		dest = append(dest, &count)

		if err := rows.Scan(dest...); err != nil {
			return nil, goerr.Wrap(err, "failed to scan grouped row")
		}

		result = append(result, model.GroupRow{
			Key: model.GroupKey{
				Hash:  types.URLHash(hash.String),
				URL:   url.String,
				Year:  int(year.Int64),
				Month: int(month.Int64),
			},
			Value: count,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate grouped rows")
	}

	return result, nil
}
