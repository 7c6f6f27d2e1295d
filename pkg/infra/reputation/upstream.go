package reputation

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/Spencerx/metrics-collector-service/pkg/domain/interfaces"
	"github.com/Spencerx/metrics-collector-service/pkg/domain/types"
	"github.com/Spencerx/metrics-collector-service/pkg/infra"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

const (
	DefaultEndpoint = "https://github-stats.mybluemix.net/api/v1/stats"

	maxResponseSize = 1 << 20
)

// Upstream fetches reputation from a github-stats compatible HTTP API:
// GET <endpoint>?apiKey=<key>&repo=<repo>
type Upstream struct {
	endpoint   string
	apiKey     types.APIKey
	httpClient infra.HTTPClient
}

var _ interfaces.ReputationSource = (*Upstream)(nil)

func NewUpstream(endpoint string, apiKey types.APIKey, httpClient infra.HTTPClient) (*Upstream, error) {
	if apiKey == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "reputation API key is empty")
	}
	if _, err := url.Parse(endpoint); err != nil || endpoint == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "invalid reputation endpoint", goerr.V("endpoint", endpoint))
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Upstream{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: httpClient,
	}, nil
}

func (x *Upstream) Get(ctx context.Context, repo string) (json.RawMessage, error) {
	u, err := url.Parse(x.endpoint)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse reputation endpoint")
	}
	q := u.Query()
	q.Set("apiKey", string(x.apiKey))
	q.Set("repo", repo)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create reputation request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(types.ErrUpstream, "reputation request failed", goerr.V("error", err.Error()), goerr.V("repo", repo))
	}
	defer safe.Close(resp.Body)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, goerr.Wrap(types.ErrUpstream, "failed to read reputation response", goerr.V("error", err.Error()))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, goerr.Wrap(types.ErrUpstream, "unexpected reputation status",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)),
			goerr.V("repo", repo),
		)
	}
	if !json.Valid(body) {
		return nil, goerr.Wrap(types.ErrUpstream, "reputation response is not JSON", goerr.V("repo", repo))
	}

	return json.RawMessage(body), nil
}
