package cli

import (
	"context"

	"github.com/Spencerx/metrics-collector-service/pkg/cli/config"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// ConfigureLogging is exported for testing purposes
var ConfigureLogging = logging.Configure

type CLI struct {
}

func New() *CLI {
	return &CLI{}
}

func (x *CLI) Run(argv []string) error {
	var logCfg config.Logging

	app := &cli.Command{
		Name:  "deptrack",
		Usage: "Collect deployment events and serve per-repository statistics",
		Flags: logCfg.Flags(),
		Commands: []*cli.Command{
			serveCommand(),
			trackCommand(),
			exportCommand(),
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, logCfg.Configure(ConfigureLogging)
		},
	}

	if err := app.Run(context.Background(), argv); err != nil {
		logging.Default().Error("fatal error", "error", err)
		return err
	}
	return nil
}
