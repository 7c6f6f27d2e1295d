package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/Spencerx/metrics-collector-service/pkg/domain/mock"
	"github.com/Spencerx/metrics-collector-service/pkg/domain/model"
	"github.com/Spencerx/metrics-collector-service/pkg/domain/types"
	"github.com/Spencerx/metrics-collector-service/pkg/infra"
	"github.com/Spencerx/metrics-collector-service/pkg/repository/memory"
	"github.com/Spencerx/metrics-collector-service/pkg/usecase"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/logging"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/gt"
)

func fixedTime(t time.Time) context.Context {
	return logging.CtxWithTime(context.Background(), func() time.Time { return t })
}

func TestTrack(t *testing.T) {
	t.Run("stores event with hash and receive time", func(t *testing.T) {
		store := &mock.EventStoreMock{
			InsertFunc: func(ctx context.Context, event *model.Event) error {
				return nil
			},
		}
		uc := usecase.New(infra.New(infra.WithEventStore(store)))

		now := time.Date(2016, 3, 1, 10, 20, 30, 123456789, time.UTC)
		gt.NoError(t, uc.Track(fixedTime(now), &model.TrackInput{
			RepositoryURL:   "https://github.com/a/b",
			ApplicationName: "app",
			ApplicationURIs: model.StringList{"app.example.com"},
		}))

		calls := store.InsertCalls()
		gt.A(t, calls).Length(1)
		event := calls[0].Event
		gt.V(t, event.RepositoryURLHash).Equal(types.URLHash("14b7465a61d322ac2ef9d799c27bf235"))
		gt.V(t, event.DateReceived).Equal(time.Date(2016, 3, 1, 10, 20, 30, 123000000, time.UTC))
		gt.V(t, event.ApplicationURIs).Equal([]string{"app.example.com"})
	})

	t.Run("missing body is rejected without write", func(t *testing.T) {
		store := &mock.EventStoreMock{}
		uc := usecase.New(infra.New(infra.WithEventStore(store)))

		err := uc.Track(context.Background(), nil)
		gt.True(t, errors.Is(err, types.ErrBadRequest))
		gt.A(t, store.InsertCalls()).Length(0)
	})

	t.Run("no event store", func(t *testing.T) {
		uc := usecase.New(infra.New())
		err := uc.Track(context.Background(), &model.TrackInput{})
		gt.True(t, errors.Is(err, types.ErrUnconfigured))
	})

	t.Run("store failure", func(t *testing.T) {
		store := &mock.EventStoreMock{
			InsertFunc: func(ctx context.Context, event *model.Event) error {
				return errors.New("disk full")
			},
		}
		uc := usecase.New(infra.New(infra.WithEventStore(store)))
		err := uc.Track(context.Background(), &model.TrackInput{RepositoryURL: "x"})
		gt.True(t, errors.Is(err, types.ErrStore))
	})

	t.Run("event is archived to BigQuery", func(t *testing.T) {
		mockBQ := &mock.BigQueryMock{
			GetMetadataFunc: func(ctx context.Context) (*bigquery.TableMetadata, error) {
				return nil, nil
			},
			CreateTableFunc: func(ctx context.Context, md *bigquery.TableMetadata) error {
				return nil
			},
			InsertFunc: func(ctx context.Context, schema bigquery.Schema, data any) error {
				return nil
			},
		}
		uc := usecase.New(infra.New(
			infra.WithEventStore(memory.NewEventStore()),
			infra.WithBigQuery(mockBQ),
		))

		gt.NoError(t, uc.Track(context.Background(), &model.TrackInput{RepositoryURL: "https://github.com/a/b"}))
		gt.A(t, mockBQ.CreateTableCalls()).Length(1)

		inserts := mockBQ.InsertCalls()
		gt.A(t, inserts).Length(1)
		record, ok := inserts[0].Data.(*model.EventArchiveRecord)
		gt.True(t, ok)
		gt.V(t, record.Event.RepositoryURL).Equal("https://github.com/a/b")
		gt.V(t, record.ReceivedAt).Equal(record.EventArchive.ReceivedAt.UnixMicro())
	})

	t.Run("archive failure does not fail ingest", func(t *testing.T) {
		mockBQ := &mock.BigQueryMock{
			GetMetadataFunc: func(ctx context.Context) (*bigquery.TableMetadata, error) {
				return nil, errors.New("permission denied")
			},
		}
		store := memory.NewEventStore()
		uc := usecase.New(infra.New(
			infra.WithEventStore(store),
			infra.WithBigQuery(mockBQ),
		))

		gt.NoError(t, uc.Track(context.Background(), &model.TrackInput{RepositoryURL: "https://github.com/a/b"}))

		count := gt.R1(uc.RepoCount(context.Background(), model.HashURL("https://github.com/a/b"))).NoError(t)
		gt.V(t, count).Equal(int64(1))
	})
}

func TestCreateOrUpdateBigQueryTable(t *testing.T) {
	archive := model.NewEventArchive(&model.Event{
		DateReceived:  time.Now(),
		RepositoryURL: "https://github.com/a/b",
	})
	current := gt.R1(bqs.Infer(*archive)).NoError(t)

	t.Run("schema unchanged", func(t *testing.T) {
		mockBQ := &mock.BigQueryMock{
			GetMetadataFunc: func(ctx context.Context) (*bigquery.TableMetadata, error) {
				return &bigquery.TableMetadata{Schema: current}, nil
			},
		}
		schema := gt.R1(usecase.CreateOrUpdateBigQueryTableForTest(context.Background(), mockBQ, archive)).NoError(t)
		gt.True(t, bqs.Equal(schema, current))
		gt.A(t, mockBQ.UpdateTableCalls()).Length(0)
	})

	t.Run("schema merged", func(t *testing.T) {
		old := bigquery.Schema{
			{Name: "id", Type: bigquery.StringFieldType},
		}
		mockBQ := &mock.BigQueryMock{
			GetMetadataFunc: func(ctx context.Context) (*bigquery.TableMetadata, error) {
				return &bigquery.TableMetadata{Schema: old, ETag: "etag-1"}, nil
			},
			UpdateTableFunc: func(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error {
				return nil
			},
		}
		schema := gt.R1(usecase.CreateOrUpdateBigQueryTableForTest(context.Background(), mockBQ, archive)).NoError(t)
		gt.False(t, bqs.Equal(schema, old))

		calls := mockBQ.UpdateTableCalls()
		gt.A(t, calls).Length(1)
		gt.V(t, calls[0].ETag).Equal("etag-1")
	})
}
