package cli_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Spencerx/metrics-collector-service/pkg/cli"
	"github.com/Spencerx/metrics-collector-service/pkg/domain/types"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/logging"
	"github.com/m-mizutani/gt"
)

func TestRunAppliesLoggingFlags(t *testing.T) {
	t.Setenv("DEPTRACK_DATABASE_URL", "")
	t.Setenv("DATABASE_URL", "")
	original := cli.ConfigureLogging
	t.Cleanup(func() { cli.ConfigureLogging = original })

	var format, level, output string
	cli.ConfigureLogging = func(f, l, o string) error {
		format, level, output = f, l, o
		return nil
	}

	path := filepath.Join(t.TempDir(), "stats.csv")
	err := cli.New().Run([]string{
		"deptrack", "-l", "debug", "--log-format", "json",
		"export", "--output", path,
	})
	gt.V(t, format).Equal("json")
	gt.V(t, level).Equal("debug")
	gt.V(t, output).Equal("-")

	// no database configured
	gt.True(t, errors.Is(err, types.ErrInvalidOption))
	_, statErr := os.Stat(path)
	gt.True(t, os.IsNotExist(statErr))
}

func TestRunInvalidLogLevel(t *testing.T) {
	original := cli.ConfigureLogging
	t.Cleanup(func() { cli.ConfigureLogging = original })
	cli.ConfigureLogging = logging.Configure

	path := filepath.Join(t.TempDir(), "stats.csv")
	gt.Error(t, cli.New().Run([]string{
		"deptrack", "--log-level", "verbose", "export", "--output", path,
	}))
}
