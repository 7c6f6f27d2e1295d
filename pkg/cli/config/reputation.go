package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/Spencerx/metrics-collector-service/pkg/domain/interfaces"
	"github.com/Spencerx/metrics-collector-service/pkg/domain/types"
	"github.com/Spencerx/metrics-collector-service/pkg/infra"
	"github.com/Spencerx/metrics-collector-service/pkg/infra/reputation"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

type Reputation struct {
	apiKey   types.APIKey `masq:"secret"`
	endpoint string
	ttl      time.Duration
	timeout  time.Duration
}

func (x *Reputation) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-stats-api-key",
			Usage:       "API key of github-stats service",
			Category:    "Reputation",
			Destination: (*string)(&x.apiKey),
			Sources:     cli.EnvVars("DEPTRACK_GITHUB_STATS_API_KEY", "GITHUB_STATS_API_KEY"),
		},
		&cli.StringFlag{
			Name:        "github-stats-endpoint",
			Usage:       "Endpoint of github-stats service",
			Category:    "Reputation",
			Destination: &x.endpoint,
			Sources:     cli.EnvVars("DEPTRACK_GITHUB_STATS_ENDPOINT"),
			Value:       reputation.DefaultEndpoint,
		},
		&cli.DurationFlag{
			Name:        "reputation-ttl",
			Usage:       "Cache TTL of reputation data",
			Category:    "Reputation",
			Destination: &x.ttl,
			Sources:     cli.EnvVars("DEPTRACK_REPUTATION_TTL"),
			Value:       reputation.DefaultTTL,
		},
		&cli.DurationFlag{
			Name:        "reputation-timeout",
			Usage:       "Timeout of a single reputation lookup",
			Category:    "Reputation",
			Destination: &x.timeout,
			Sources:     cli.EnvVars("DEPTRACK_REPUTATION_TIMEOUT"),
			Value:       reputation.DefaultTimeout,
		},
	}
}

func (x *Reputation) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("apiKey.len", len(x.apiKey)),
		slog.String("endpoint", x.endpoint),
		slog.Duration("ttl", x.ttl),
		slog.Duration("timeout", x.timeout),
	)
}

func (x *Reputation) Timeout() time.Duration {
	return x.timeout
}

// NewClient picks the github-stats service when an API key is set, then
// GitHub when gh is configured. Otherwise the returned client is disabled.
func (x *Reputation) NewClient(ctx context.Context, httpClient infra.HTTPClient, cache interfaces.Cache, gh *GitHubApp) (*reputation.Client, error) {
	options := []reputation.Option{
		reputation.WithCache(cache),
		reputation.WithTTL(x.ttl),
		reputation.WithTimeout(x.timeout),
	}

	if x.apiKey != "" {
		upstream, err := reputation.NewUpstream(x.endpoint, x.apiKey, httpClient)
		if err != nil {
			return nil, err
		}
		return reputation.New(upstream, options...), nil
	}

	if gh != nil && gh.Enabled() {
		client, err := gh.New()
		if err != nil {
			return nil, err
		}
		logging.From(ctx).Info("reputation is served from GitHub API")
		return reputation.New(client, options...), nil
	}

	logging.From(ctx).Warn("reputation source is not configured")
	return reputation.New(nil), nil
}
