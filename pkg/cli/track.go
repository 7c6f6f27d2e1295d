package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Spencerx/metrics-collector-service/pkg/domain/model"
	"github.com/Spencerx/metrics-collector-service/pkg/domain/types"
	"github.com/Spencerx/metrics-collector-service/pkg/infra"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/logging"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const defaultTrackerURL = "http://127.0.0.1:8000/api/v1/track"

func trackCommand() *cli.Command {
	var (
		trackerURL string
		dir        string
		noGit      bool
		timeout    time.Duration
		uris       []string
		input      model.TrackInput
	)

	return &cli.Command{
		Name:  "track",
		Usage: "Send a deployment event of the current application to a tracker",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "tracker-url",
				Usage:       "Track endpoint of the tracker",
				Value:       defaultTrackerURL,
				Sources:     cli.EnvVars("DEPTRACK_TRACKER_URL"),
				Destination: &trackerURL,
			},
			&cli.StringFlag{
				Name:        "dir",
				Usage:       "Directory inside the git repository of the application",
				Value:       ".",
				Destination: &dir,
			},
			&cli.BoolFlag{
				Name:        "no-git",
				Usage:       "Do not read repository_url and code_version from git",
				Destination: &noGit,
			},
			&cli.DurationFlag{
				Name:        "timeout",
				Usage:       "Request timeout",
				Value:       10 * time.Second,
				Destination: &timeout,
			},
			&cli.StringFlag{
				Name:        "repository-url",
				Usage:       "Repository URL (detected from git remote origin if not set)",
				Destination: &input.RepositoryURL,
			},
			&cli.StringFlag{
				Name:        "code-version",
				Usage:       "Code version (detected from git HEAD if not set)",
				Destination: &input.CodeVersion,
			},
			&cli.StringFlag{
				Name:        "application-name",
				Usage:       "Application name (read from VCAP_APPLICATION if not set)",
				Destination: &input.ApplicationName,
			},
			&cli.StringFlag{
				Name:        "application-version",
				Usage:       "Application version (read from VCAP_APPLICATION if not set)",
				Destination: &input.ApplicationVersion,
			},
			&cli.StringFlag{
				Name:        "space-id",
				Usage:       "Space ID (read from VCAP_APPLICATION if not set)",
				Destination: &input.SpaceID,
			},
			&cli.StringSliceFlag{
				Name:        "application-uri",
				Usage:       "Application URI, can be repeated (read from VCAP_APPLICATION if not set)",
				Destination: &uris,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			input.ApplicationURIs = uris
			input.DateSent = time.Now().UTC().Format(time.RFC3339Nano)

			if !noGit {
				if err := AutoDetectGitMetadata(ctx, dir, &input); err != nil {
					logging.From(ctx).Warn("failed to detect git metadata", "error", err)
				}
			}
			if err := ApplyVCAPApplication(os.Getenv("VCAP_APPLICATION"), &input); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			if err := SendTrack(ctx, infra.New().HTTPClient(), trackerURL, &input); err != nil {
				return err
			}

			logging.From(ctx).Info("deployment tracked",
				slog.String("tracker", trackerURL),
				slog.String("repository_url", input.RepositoryURL),
				slog.String("code_version", input.CodeVersion),
			)
			return nil
		},
	}
}

// SendTrack posts input as JSON to trackerURL. Anything but 201 fails.
func SendTrack(ctx context.Context, client infra.HTTPClient, trackerURL string, input *model.TrackInput) error {
	body, err := json.Marshal(input)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal track input")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, trackerURL, bytes.NewReader(body))
	if err != nil {
		return goerr.Wrap(err, "failed to create track request", goerr.V("url", trackerURL))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to send track request", goerr.V("url", trackerURL))
	}
	defer safe.Close(resp.Body)

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return goerr.Wrap(types.ErrUpstream, "tracker rejected event",
			goerr.V("url", trackerURL),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(respBody)),
		)
	}

	return nil
}
