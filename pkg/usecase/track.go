package usecase

import (
	"context"
	"log/slog"

	"cloud.google.com/go/bigquery"
	"github.com/Spencerx/metrics-collector-service/pkg/domain/interfaces"
	"github.com/Spencerx/metrics-collector-service/pkg/domain/model"
	"github.com/Spencerx/metrics-collector-service/pkg/domain/types"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/errutil"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/logging"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/metrics"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/goerr/v2"
)

// Track records one deployment event. The event is written to the event store
// exactly once; mirroring it to the archive is best effort.
func (x *UseCase) Track(ctx context.Context, input *model.TrackInput) error {
	if input == nil {
		metrics.EventsTracked.WithLabelValues(metrics.ResultError).Inc()
		return goerr.Wrap(types.ErrBadRequest, "no event body")
	}

	store, err := x.eventStore()
	if err != nil {
		metrics.EventsTracked.WithLabelValues(metrics.ResultError).Inc()
		return err
	}

	event, err := model.NewEvent(input, logging.CtxTime(ctx))
	if err != nil {
		metrics.EventsTracked.WithLabelValues(metrics.ResultError).Inc()
		return err
	}

	if err := store.Insert(ctx, event); err != nil {
		metrics.EventsTracked.WithLabelValues(metrics.ResultError).Inc()
		return goerr.Wrap(types.ErrStore, "failed to insert event",
			goerr.V("error", err.Error()),
			goerr.V("repository_url", event.RepositoryURL),
		)
	}
	metrics.EventsTracked.WithLabelValues(metrics.ResultOK).Inc()

	logging.From(ctx).Info("Tracked deployment",
		slog.String("repository_url", event.RepositoryURL),
		slog.String("application_name", event.ApplicationName),
	)

	if bq := x.clients.BigQuery(); bq != nil {
		if err := archiveEvent(ctx, bq, event); err != nil {
			metrics.ArchiveFailures.Inc()
			errutil.HandleError(ctx, "failed to archive event", err)
		}
	}

	return nil
}

func archiveEvent(ctx context.Context, bq interfaces.BigQuery, event *model.Event) error {
	archive := model.NewEventArchive(event)

	schema, err := createOrUpdateBigQueryTable(ctx, bq, archive)
	if err != nil {
		return err
	}

	if err := bq.Insert(ctx, schema, archive.Record()); err != nil {
		return goerr.Wrap(err, "failed to insert event to BigQuery", goerr.V("id", archive.ID))
	}
	return nil
}

// createOrUpdateBigQueryTable creates the archive table on first use and
// merges the schema when the event shape has grown.
func createOrUpdateBigQueryTable(ctx context.Context, bq interfaces.BigQuery, archive *model.EventArchive) (bigquery.Schema, error) {
	schema, err := bqs.Infer(*archive)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to infer event schema")
	}

	metaData, err := bq.GetMetadata(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get BigQuery table metadata")
	}
	if metaData == nil {
		if err := bq.CreateTable(ctx, &bigquery.TableMetadata{
			Schema: schema,
		}); err != nil {
			return nil, goerr.Wrap(err, "failed to create BigQuery table")
		}
		return schema, nil
	}

	if bqs.Equal(metaData.Schema, schema) {
		return schema, nil
	}

	merged, err := bqs.Merge(metaData.Schema, schema)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to merge BigQuery schema")
	}
	if err := bq.UpdateTable(ctx, bigquery.TableMetadataToUpdate{
		Schema: merged,
	}, metaData.ETag); err != nil {
		return nil, goerr.Wrap(err, "failed to update BigQuery table")
	}

	return merged, nil
}
