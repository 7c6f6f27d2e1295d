package usecase

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/Spencerx/metrics-collector-service/pkg/domain/model"
	"github.com/Spencerx/metrics-collector-service/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

var csvHeader = []string{"URL", "Year", "Month", "Deployments"}

// ExportCSV writes one line per (url, year, month) bucket in store key order.
func (x *UseCase) ExportCSV(ctx context.Context, w io.Writer) error {
	store, err := x.eventStore()
	if err != nil {
		return err
	}

	rows, err := store.QueryGrouped(ctx, model.GroupQuery{View: model.ViewByRepo, Level: 3})
	if err != nil {
		return goerr.Wrap(types.ErrStore, "failed to query deployments by repo", goerr.V("error", err.Error()))
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return goerr.Wrap(err, "failed to write CSV header")
	}
	for _, row := range rows {
		record := []string{
			row.Key.URL,
			strconv.Itoa(row.Key.Year),
			strconv.Itoa(row.Key.Month),
			strconv.FormatInt(row.Value, 10),
		}
		if err := cw.Write(record); err != nil {
			return goerr.Wrap(err, "failed to write CSV record")
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return goerr.Wrap(err, "failed to flush CSV")
	}
	return nil
}
