package ghapp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Spencerx/metrics-collector-service/pkg/domain/interfaces"
	"github.com/Spencerx/metrics-collector-service/pkg/domain/types"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/logging"
	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/goerr/v2"
)

// Client reads repository statistics from the GitHub REST API. It serves as a
// reputation source when no github-stats endpoint is available.
type Client struct {
	github *github.Client
}

var _ interfaces.ReputationSource = (*Client)(nil)

type Option func(*options)

type options struct {
	baseURL string
	base    http.RoundTripper
}

// WithBaseURL points the client at a GitHub Enterprise or test server.
func WithBaseURL(baseURL string) Option {
	return func(x *options) {
		x.baseURL = baseURL
	}
}

// WithTransport replaces the underlying transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(x *options) {
		x.base = rt
	}
}

// NewWithToken authenticates with a personal or fine-grained access token.
// An empty token makes unauthenticated (rate limited) requests.
func NewWithToken(token types.GitHubToken, opts ...Option) (*Client, error) {
	o := buildOptions(opts)
	rt := o.base
	if token != "" {
		rt = &tokenTransport{token: token, base: o.base}
	}
	return newClient(github.NewClient(&http.Client{Transport: rt}), o)
}

type tokenTransport struct {
	token types.GitHubToken
	base  http.RoundTripper
}

func (x *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+string(x.token))
	return x.base.RoundTrip(req)
}

// NewWithApp authenticates as a GitHub App installation.
func NewWithApp(appID types.GitHubAppID, installID types.GitHubAppInstallID, pem types.GitHubAppPrivateKey, opts ...Option) (*Client, error) {
	if appID == 0 {
		return nil, goerr.Wrap(types.ErrInvalidOption, "appID is empty")
	}
	if installID == 0 {
		return nil, goerr.Wrap(types.ErrInvalidOption, "installID is empty")
	}
	if pem == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "pem is empty")
	}

	o := buildOptions(opts)
	itr, err := ghinstallation.New(o.base, int64(appID), int64(installID), []byte(pem))
	if err != nil {
		return nil, goerr.Wrap(err, "Failed to create github app transport", goerr.V("appID", appID))
	}
	if o.baseURL != "" {
		itr.BaseURL = strings.TrimSuffix(o.baseURL, "/")
	}

	return newClient(github.NewClient(&http.Client{Transport: itr}), o)
}

func buildOptions(opts []Option) *options {
	o := &options{base: http.DefaultTransport}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func newClient(client *github.Client, o *options) (*Client, error) {
	if o.baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(o.baseURL, "/") + "/")
		if err != nil {
			return nil, goerr.Wrap(types.ErrInvalidOption, "invalid GitHub base URL", goerr.V("baseURL", o.baseURL))
		}
		client.BaseURL = u
	}
	return &Client{github: client}, nil
}

// RepoStats is the reputation payload built from GitHub.
type RepoStats struct {
	Owner      string    `json:"owner"`
	Name       string    `json:"name"`
	Stars      int       `json:"stars"`
	Forks      int       `json:"forks"`
	Watchers   int       `json:"watchers"`
	OpenIssues int       `json:"openIssues"`
	Commits    int       `json:"commits"`
	PushedAt   time.Time `json:"pushedAt"`
}

// ParseRepoURL extracts owner and name from a github.com repository URL.
// Both web and clone forms are accepted.
func ParseRepoURL(repo string) (owner, name string, err error) {
	repo = strings.TrimSpace(repo)
	if strings.HasPrefix(repo, "git@github.com:") {
		repo = "https://github.com/" + strings.TrimPrefix(repo, "git@github.com:")
	}

	u, err := url.Parse(repo)
	if err != nil {
		return "", "", goerr.Wrap(types.ErrNotFound, "invalid repository URL", goerr.V("repo", repo))
	}
	host := strings.ToLower(u.Hostname())
	if host != "github.com" && host != "www.github.com" {
		return "", "", goerr.Wrap(types.ErrNotFound, "not a GitHub repository", goerr.V("repo", repo))
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", goerr.Wrap(types.ErrNotFound, "repository path is incomplete", goerr.V("repo", repo))
	}

	return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
}

func (x *Client) Get(ctx context.Context, repo string) (json.RawMessage, error) {
	owner, name, err := ParseRepoURL(repo)
	if err != nil {
		return nil, err
	}

	r, _, err := x.github.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, goerr.Wrap(types.ErrUpstream, "failed to get repository",
			goerr.V("owner", owner),
			goerr.V("name", name),
			goerr.V("error", err.Error()),
		)
	}

	commits, err := x.countCommits(ctx, owner, name)
	if err != nil {
		return nil, err
	}

	stats := RepoStats{
		Owner:      owner,
		Name:       name,
		Stars:      r.GetStargazersCount(),
		Forks:      r.GetForksCount(),
		Watchers:   r.GetSubscribersCount(),
		OpenIssues: r.GetOpenIssuesCount(),
		Commits:    commits,
		PushedAt:   r.GetPushedAt().Time,
	}

	logging.From(ctx).Debug("Fetched GitHub repository stats", slog.Any("stats", stats))

	raw, err := json.Marshal(stats)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal repository stats")
	}
	return raw, nil
}

// countCommits requests one commit per page so the last page number equals
// the number of commits on the default branch.
func (x *Client) countCommits(ctx context.Context, owner, name string) (int, error) {
	list, resp, err := x.github.Repositories.ListCommits(ctx, owner, name, &github.CommitsListOptions{
		ListOptions: github.ListOptions{PerPage: 1},
	})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusConflict {
			// empty repository
			return 0, nil
		}
		return 0, goerr.Wrap(types.ErrUpstream, "failed to list commits",
			goerr.V("owner", owner),
			goerr.V("name", name),
			goerr.V("error", err.Error()),
		)
	}

	if resp.LastPage > 0 {
		return resp.LastPage, nil
	}
	return len(list), nil
}
