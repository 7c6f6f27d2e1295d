package reputation

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/Spencerx/metrics-collector-service/pkg/domain/interfaces"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/logging"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/metrics"
	"github.com/m-mizutani/goerr/v2"
)

const (
	DefaultTTL     = 21600 * time.Second
	DefaultTimeout = 10 * time.Second

	cacheKeyPrefix = "repo-"
)

// Client looks up reputation data through a shared TTL cache.
type Client struct {
	source  interfaces.ReputationSource
	cache   interfaces.Cache
	ttl     time.Duration
	timeout time.Duration
}

var _ interfaces.Reputation = (*Client)(nil)

type Option func(*Client)

// WithCache sets the shared cache. Without it every Fetch goes upstream.
func WithCache(cache interfaces.Cache) Option {
	return func(x *Client) {
		x.cache = cache
	}
}

func WithTTL(ttl time.Duration) Option {
	return func(x *Client) {
		x.ttl = ttl
	}
}

// WithTimeout bounds a single upstream call.
func WithTimeout(timeout time.Duration) Option {
	return func(x *Client) {
		x.timeout = timeout
	}
}

// New creates a client. A nil source makes the client disabled.
func New(source interfaces.ReputationSource, options ...Option) *Client {
	client := &Client{
		source:  source,
		ttl:     DefaultTTL,
		timeout: DefaultTimeout,
	}
	for _, opt := range options {
		opt(client)
	}
	return client
}

func CacheKey(repo string) string {
	return cacheKeyPrefix + repo
}

func (x *Client) Enabled() bool {
	return x != nil && x.source != nil
}

// Fetch returns the reputation payload of repo, or nil when disabled.
func (x *Client) Fetch(ctx context.Context, repo string) (json.RawMessage, error) {
	if !x.Enabled() {
		return nil, nil
	}

	logger := logging.From(ctx).With(slog.String("repo", repo))
	key := CacheKey(repo)

	if x.cache != nil {
		cached, ok, err := x.cache.Get(ctx, key)
		switch {
		case err != nil:
			logger.Warn("failed to read reputation cache", slog.Any("error", err))
		case ok && json.Valid(cached):
			metrics.ReputationLookups.WithLabelValues(metrics.ResultHit).Inc()
			return json.RawMessage(cached), nil
		case ok:
			logger.Warn("discarding malformed cached reputation")
		}
	}
	metrics.ReputationLookups.WithLabelValues(metrics.ResultMiss).Inc()

	fetchCtx := ctx
	if x.timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, x.timeout)
		defer cancel()
	}

	data, err := x.source.Get(fetchCtx, repo)
	if err != nil {
		metrics.ReputationLookups.WithLabelValues(metrics.ResultError).Inc()
		return nil, goerr.Wrap(err, "failed to fetch reputation", goerr.V("repo", repo))
	}

	if x.cache != nil {
		if err := x.cache.Set(ctx, key, data, x.ttl); err != nil {
			logger.Warn("failed to write reputation cache", slog.Any("error", err))
		}
	}

	return data, nil
}
