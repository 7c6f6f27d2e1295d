package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Spencerx/metrics-collector-service/pkg/domain/interfaces"
	"github.com/Spencerx/metrics-collector-service/pkg/domain/types"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/logging"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/metrics"
	"github.com/go-chi/chi/v5"
)

type Server struct {
	mux *chi.Mux
}

func safeWrite(w http.ResponseWriter, code int, body []byte) {
	w.WriteHeader(code)

	// nosemgrep: go.lang.security.audit.xss.no-direct-write-to-responsewriter.no-direct-write-to-responsewriter
	// Why: The response data is not from user input
	if _, err := w.Write(body); err != nil {
		logging.Default().Error("fail to write response", slog.Any("error", err))
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		logging.Default().Error("fail to marshal response", slog.Any("error", err))
		code, raw = http.StatusInternalServerError, []byte(`{"error":"Internal Server Error"}`)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	safeWrite(w, code, raw)
}

const (
	DefaultUserHeader  = "X-Forwarded-User"
	DefaultEmailHeader = "X-Forwarded-Email"
)

type config struct {
	local          bool
	apiKey         types.APIKey
	allowedDomains []string
	userHeader     string
	emailHeader    string
	loginURL       string
}

type Option func(*config)

// WithLocal disables HTTPS redirect, authentication and API key checks.
func WithLocal(local bool) Option {
	return func(cfg *config) {
		cfg.local = local
	}
}

// WithAPIKey sets the key required by /repos.
func WithAPIKey(key types.APIKey) Option {
	return func(cfg *config) {
		cfg.apiKey = key
	}
}

// WithAllowedDomains sets email suffixes (e.g. ".ibm.com") accepted for
// human views. Empty allows any authenticated caller.
func WithAllowedDomains(domains []string) Option {
	return func(cfg *config) {
		cfg.allowedDomains = domains
	}
}

// WithIdentityHeaders names the headers set by the authenticating proxy.
func WithIdentityHeaders(userHeader, emailHeader string) Option {
	return func(cfg *config) {
		if userHeader != "" {
			cfg.userHeader = userHeader
		}
		if emailHeader != "" {
			cfg.emailHeader = emailHeader
		}
	}
}

// WithLoginURL makes unauthenticated callers redirect there instead of
// getting 401.
func WithLoginURL(loginURL string) Option {
	return func(cfg *config) {
		cfg.loginURL = loginURL
	}
}

func New(uc interfaces.UseCase, options ...Option) *Server {
	cfg := &config{
		userHeader:  DefaultUserHeader,
		emailHeader: DefaultEmailHeader,
	}
	for _, opt := range options {
		opt(cfg)
	}
	h := &handler{uc: uc}

	r := chi.NewRouter()
	r.Use(preProcess)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		safeWrite(w, http.StatusOK, []byte("ok"))
	})
	r.Get("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		safeWrite(w, http.StatusOK, []byte("User-agent: *\nDisallow: /"))
	})
	r.Handle("/metrics", metrics.Handler())

	r.Post("/", h.track)
	r.Post("/api/v1/track", h.track)

	r.Group(func(r chi.Router) {
		r.Use(forceSSL(cfg))

		// public
		r.Get("/stats/{hash}/metrics.json", h.repoCount)
		r.Get("/stats/{hash}/badge.svg", h.badge)
		r.Get("/stats/{hash}/button.svg", h.button)

		r.With(checkAPIKey(cfg)).Get("/repos", h.listRepos)

		r.Group(func(r chi.Router) {
			r.Use(authenticate(cfg))
			r.Get("/stats", h.overview)
			r.Get("/stats.csv", h.exportCSV)
			r.Get("/stats/{hash}", h.repoDetail)
			r.Get("/api/v1/stats", h.reputation)
			r.Get("/api/v1/whoami", h.whoami)
		})
	})

	return &Server{
		mux: r,
	}
}

func (x *Server) Mux() *chi.Mux {
	return x.mux
}

// requestScheme honours X-Forwarded-Proto set by the fronting proxy.
func requestScheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
