package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/Spencerx/metrics-collector-service/pkg/cli/config"
	"github.com/Spencerx/metrics-collector-service/pkg/domain/types"
	"github.com/Spencerx/metrics-collector-service/pkg/infra"
	"github.com/Spencerx/metrics-collector-service/pkg/usecase"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/logging"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/urfave/cli/v3"
)

func exportCommand() *cli.Command {
	var (
		output   string
		database config.Database
	)

	return &cli.Command{
		Name:  "export",
		Usage: "Export monthly deployment counts per repository as CSV",
		Flags: slice.Flatten(
			[]cli.Flag{
				&cli.StringFlag{
					Name:        "output",
					Usage:       "Output file path, '-' for stdout",
					Value:       "-",
					Destination: &output,
				},
			},
			database.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Debug("starting export",
				slog.String("output", output),
				slog.Any("Database", &database),
			)

			if !database.Enabled() {
				return goerr.Wrap(types.ErrInvalidOption, "--database-url is required for export")
			}

			store, closeStore, err := database.NewEventStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			uc := usecase.New(infra.New(infra.WithEventStore(store)))
			return ExportCSV(ctx, uc, output)
		},
	}
}

type csvExporter interface {
	ExportCSV(ctx context.Context, w io.Writer) error
}

// ExportCSV writes the export to path. A partially written file is removed
// on failure.
func ExportCSV(ctx context.Context, uc csvExporter, path string) error {
	if path == "-" || path == "" {
		return uc.ExportCSV(ctx, os.Stdout)
	}

	f, err := os.Create(path) // #nosec G304
	if err != nil {
		return goerr.Wrap(err, "failed to create output file", goerr.V("path", path))
	}

	if err := uc.ExportCSV(ctx, f); err != nil {
		safe.Close(f)
		safe.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		safe.Remove(path)
		return goerr.Wrap(err, "failed to close output file", goerr.V("path", path))
	}

	return nil
}
