package config

import (
	"log/slog"

	"github.com/Spencerx/metrics-collector-service/pkg/controller/server"
	"github.com/Spencerx/metrics-collector-service/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

type Auth struct {
	local          bool
	apiKey         types.APIKey `masq:"secret"`
	allowedDomains []string
	userHeader     string
	emailHeader    string
	loginURL       string
}

func (x *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "local",
			Usage:       "Local mode, disables authentication and HTTPS redirect",
			Category:    "Auth",
			Destination: &x.local,
			Sources:     cli.EnvVars("DEPTRACK_LOCAL"),
		},
		&cli.StringFlag{
			Name:        "api-key",
			Usage:       "API key required by /repos",
			Category:    "Auth",
			Destination: (*string)(&x.apiKey),
			Sources:     cli.EnvVars("DEPTRACK_API_KEY", "API_KEY"),
		},
		&cli.StringSliceFlag{
			Name:        "allowed-domain",
			Usage:       "Email domain suffix allowed to view statistics (e.g. @example.com)",
			Category:    "Auth",
			Destination: &x.allowedDomains,
			Sources:     cli.EnvVars("DEPTRACK_ALLOWED_DOMAINS"),
		},
		&cli.StringFlag{
			Name:        "identity-user-header",
			Usage:       "Request header carrying the authenticated user",
			Category:    "Auth",
			Destination: &x.userHeader,
			Sources:     cli.EnvVars("DEPTRACK_IDENTITY_USER_HEADER"),
			Value:       server.DefaultUserHeader,
		},
		&cli.StringFlag{
			Name:        "identity-email-header",
			Usage:       "Request header carrying comma separated emails of the user",
			Category:    "Auth",
			Destination: &x.emailHeader,
			Sources:     cli.EnvVars("DEPTRACK_IDENTITY_EMAIL_HEADER"),
			Value:       server.DefaultEmailHeader,
		},
		&cli.StringFlag{
			Name:        "login-url",
			Usage:       "Redirect destination of unauthenticated requests. 401 is returned if not set",
			Category:    "Auth",
			Destination: &x.loginURL,
			Sources:     cli.EnvVars("DEPTRACK_LOGIN_URL"),
		},
	}
}

func (x *Auth) ServerOptions() []server.Option {
	return []server.Option{
		server.WithLocal(x.local),
		server.WithAPIKey(x.apiKey),
		server.WithAllowedDomains(x.allowedDomains),
		server.WithIdentityHeaders(x.userHeader, x.emailHeader),
		server.WithLoginURL(x.loginURL),
	}
}

func (x *Auth) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("local", x.local),
		slog.Int("apiKey.len", len(x.apiKey)),
		slog.Any("allowedDomains", x.allowedDomains),
		slog.String("userHeader", x.userHeader),
		slog.String("emailHeader", x.emailHeader),
		slog.String("loginURL", x.loginURL),
	)
}
