package config

import (
	"log/slog"

	"github.com/Spencerx/metrics-collector-service/pkg/domain/types"
	"github.com/Spencerx/metrics-collector-service/pkg/infra/ghapp"
	"github.com/urfave/cli/v3"
)

// GitHubApp configures repository statistics from the GitHub API, either with
// an App installation or a plain token.
type GitHubApp struct {
	id         types.GitHubAppID
	installID  types.GitHubAppInstallID
	privateKey types.GitHubAppPrivateKey `masq:"secret"`
	token      types.GitHubToken         `masq:"secret"`
	baseURL    string
}

func (x *GitHubApp) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID",
			Category:    "GitHub",
			Destination: (*int64)(&x.id),
			Sources:     cli.EnvVars("DEPTRACK_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-app-install-id",
			Usage:       "GitHub App installation ID",
			Category:    "GitHub",
			Destination: (*int64)(&x.installID),
			Sources:     cli.EnvVars("DEPTRACK_GITHUB_APP_INSTALL_ID"),
		},
		&cli.StringFlag{
			Name:        "github-app-private-key",
			Usage:       "GitHub App Private Key",
			Category:    "GitHub",
			Destination: (*string)(&x.privateKey),
			Sources:     cli.EnvVars("DEPTRACK_GITHUB_APP_PRIVATE_KEY"),
		},
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token, used if GitHub App is not configured",
			Category:    "GitHub",
			Destination: (*string)(&x.token),
			Sources:     cli.EnvVars("DEPTRACK_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-base-url",
			Usage:       "GitHub API base URL (for GitHub Enterprise)",
			Category:    "GitHub",
			Destination: &x.baseURL,
			Sources:     cli.EnvVars("DEPTRACK_GITHUB_BASE_URL"),
		},
	}
}

func (x GitHubApp) appEnabled() bool {
	return x.id != 0 && x.installID != 0 && x.privateKey != ""
}

func (x GitHubApp) Enabled() bool {
	return x.appEnabled() || x.token != ""
}

// New returns nil if neither App nor token is configured.
func (x GitHubApp) New() (*ghapp.Client, error) {
	var opts []ghapp.Option
	if x.baseURL != "" {
		opts = append(opts, ghapp.WithBaseURL(x.baseURL))
	}

	switch {
	case x.appEnabled():
		return ghapp.NewWithApp(x.id, x.installID, x.privateKey, opts...)
	case x.token != "":
		return ghapp.NewWithToken(x.token, opts...)
	default:
		return nil, nil
	}
}

func (x GitHubApp) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("ID", int64(x.id)),
		slog.Int64("InstallID", int64(x.installID)),
		slog.Int("privateKey.len", len(x.privateKey)),
		slog.Int("token.len", len(x.token)),
		slog.String("baseURL", x.baseURL),
	)
}
