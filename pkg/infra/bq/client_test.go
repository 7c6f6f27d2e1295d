package bq_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/Spencerx/metrics-collector-service/pkg/domain/model"
	"github.com/Spencerx/metrics-collector-service/pkg/domain/types"
	"github.com/Spencerx/metrics-collector-service/pkg/infra/bq"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/testutil"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/gt"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/dynamicpb"
)

func newArchive(t *testing.T) *model.EventArchive {
	t.Helper()
	input := &model.TrackInput{
		RepositoryURL:   "https://github.com/a/b",
		ApplicationName: "app",
		ApplicationURIs: model.StringList{"app.example.com"},
	}
	event := gt.R1(model.NewEvent(input, time.Date(2016, 3, 1, 10, 0, 0, 0, time.UTC))).NoError(t)
	return model.NewEventArchive(event)
}

func TestEncodeRow(t *testing.T) {
	archive := newArchive(t)
	schema := gt.R1(bqs.Infer(*archive)).NoError(t)

	descriptor, normalized, err := bq.BuildDescriptor(schema)
	gt.NoError(t, err)
	gt.V(t, normalized.GetName()).NotEqual("")

	row := gt.R1(bq.EncodeRow(descriptor, archive.Record())).NoError(t)
	gt.True(t, len(row) > 0)

	msg := dynamicpb.NewMessage(descriptor)
	gt.NoError(t, proto.Unmarshal(row, msg))

	id := msg.Get(descriptor.Fields().ByName("id")).String()
	gt.V(t, id).Equal(archive.ID)

	receivedAt := msg.Get(descriptor.Fields().ByName("received_at")).Int()
	gt.V(t, receivedAt).Equal(archive.ReceivedAt.UnixMicro())
}

func TestEncodeRowMismatch(t *testing.T) {
	schema := bigquery.Schema{
		{Name: "field1", Type: bigquery.StringFieldType},
	}
	descriptor, _, err := bq.BuildDescriptor(schema)
	gt.NoError(t, err)

	_, err = bq.EncodeRow(descriptor, struct {
		WrongField int `json:"wrong_field"`
	}{WrongField: 1})
	gt.Error(t, err)
}

func TestNewRequiresTable(t *testing.T) {
	_, err := bq.New(context.Background(), "project", "dataset", "")
	gt.True(t, errors.Is(err, types.ErrInvalidOption))
}

func TestClient(t *testing.T) {
	projectID := testutil.GetEnvOrSkip(t, "TEST_BIGQUERY_PROJECT_ID")
	datasetID := testutil.GetEnvOrSkip(t, "TEST_BIGQUERY_DATASET_ID")

	ctx := context.Background()

	tblName := types.BQTableID(time.Now().Format("archive_test_20060102_150405"))
	client := gt.R1(bq.New(ctx, types.GoogleProjectID(projectID), types.BQDatasetID(datasetID), tblName)).NoError(t)
	defer func() { gt.NoError(t, client.Close()) }()

	archive := newArchive(t)
	schema := gt.R1(bqs.Infer(*archive)).NoError(t)

	t.Run("table does not exist yet", func(t *testing.T) {
		md := gt.R1(client.GetMetadata(ctx)).NoError(t)
		gt.True(t, md == nil)
	})

	t.Run("create table", func(t *testing.T) {
		gt.NoError(t, client.CreateTable(ctx, &bigquery.TableMetadata{
			Name:   tblName.String(),
			Schema: schema,
		}))
	})

	t.Run("insert event", func(t *testing.T) {
		gt.NoError(t, client.Insert(ctx, schema, archive.Record()))
	})
}
