package server

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Spencerx/metrics-collector-service/pkg/domain/model"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/logging"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/metrics"
)

// RequestIDHeader echoes the request ID so that a client can quote it when
// reporting a failed ingest.
const RequestIDHeader = "X-Request-ID"

func preProcess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID, ctx := logging.CtxRequestID(r.Context())
		logger := logging.Default().With(slog.Any("request_id", reqID))
		ctx = logging.With(ctx, logger)
		w.Header().Set(RequestIDHeader, string(reqID))

		lw := &statusCodeLogger{
			ResponseWriter: w,
			statusCode:     http.StatusOK, // Default to 200 if WriteHeader is not called
		}

		requestedAt := time.Now()
		next.ServeHTTP(lw, r.WithContext(ctx))

		metrics.HTTPRequests.WithLabelValues(r.Method, strconv.Itoa(lw.statusCode)).Inc()
		logger.Info("http access",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr),
			slog.Int("status_code", lw.statusCode),
			slog.Int64("content_length", r.ContentLength),
			slog.String("user_agent", r.UserAgent()),
			slog.String("referer", r.Referer()),
			slog.Duration("elapsed", time.Since(requestedAt)),
		)
	})
}

type statusCodeLogger struct {
	http.ResponseWriter
	statusCode int
}

func (x *statusCodeLogger) WriteHeader(code int) {
	x.statusCode = code
	x.ResponseWriter.WriteHeader(code)
}

// forceSSL redirects plain HTTP requests to HTTPS unless running locally.
func forceSSL(cfg *config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.local || requestScheme(r) == "https" {
				next.ServeHTTP(w, r)
				return
			}

			target := "https://" + r.Host + r.URL.RequestURI()
			http.Redirect(w, r, target, http.StatusMovedPermanently)
		})
	}
}

// identityFromRequest reads the identity asserted by the authenticating
// proxy. It returns nil when neither header is present.
func identityFromRequest(cfg *config, r *http.Request) *model.Identity {
	user := strings.TrimSpace(r.Header.Get(cfg.userHeader))

	var emails []string
	for _, v := range r.Header.Values(cfg.emailHeader) {
		for _, email := range strings.Split(v, ",") {
			if email = strings.TrimSpace(email); email != "" {
				emails = append(emails, email)
			}
		}
	}

	if user == "" && len(emails) == 0 {
		return nil
	}
	return &model.Identity{User: user, Emails: emails}
}

// authenticate admits callers whose identity has an email in one of the
// allowed domains.
func authenticate(cfg *config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := identityFromRequest(cfg, r)
			if identity != nil {
				r = r.WithContext(withIdentity(r.Context(), identity))
			}

			if cfg.local {
				next.ServeHTTP(w, r)
				return
			}

			if identity == nil {
				if cfg.loginURL != "" {
					http.Redirect(w, r, cfg.loginURL, http.StatusFound)
					return
				}
				writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Authentication required"})
				return
			}

			if !identity.HasEmailDomain(cfg.allowedDomains) {
				logging.From(r.Context()).Warn("rejected identity outside allowed domains",
					slog.String("user", identity.User),
				)
				writeJSON(w, http.StatusForbidden, errorBody{Error: "You must be a member of an allowed organization to use this app"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// checkAPIKey requires the apiKey query parameter to match the configured key.
func checkAPIKey(cfg *config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.local {
				next.ServeHTTP(w, r)
				return
			}

			if !r.URL.Query().Has("apiKey") {
				writeJSON(w, http.StatusForbidden, errorBody{Error: "A query string parameter apiKey must be set"})
				return
			}

			given := r.URL.Query().Get("apiKey")
			if cfg.apiKey == "" || subtle.ConstantTimeCompare([]byte(given), []byte(cfg.apiKey)) != 1 {
				writeJSON(w, http.StatusForbidden, errorBody{Error: "Invalid api key"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
