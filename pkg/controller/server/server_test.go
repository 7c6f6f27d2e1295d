package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Spencerx/metrics-collector-service/pkg/controller/server"
	"github.com/Spencerx/metrics-collector-service/pkg/domain/mock"
	"github.com/Spencerx/metrics-collector-service/pkg/domain/model"
	"github.com/Spencerx/metrics-collector-service/pkg/domain/types"
	"github.com/Spencerx/metrics-collector-service/pkg/infra"
	"github.com/Spencerx/metrics-collector-service/pkg/repository/memory"
	"github.com/Spencerx/metrics-collector-service/pkg/usecase"
	"github.com/m-mizutani/gt"
)

const repoURL = "https://github.com/IBM/deployment-tracker"

func serve(srv *server.Server, method, target string, body io.Reader, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	srv.Mux().ServeHTTP(rec, req)
	return rec
}

func newLocalServer(t *testing.T) *server.Server {
	t.Helper()
	uc := usecase.New(infra.New(infra.WithEventStore(memory.NewEventStore())))
	return server.New(uc, server.WithLocal(true))
}

var jsonHeader = map[string]string{"Content-Type": "application/json"}

func TestRouterSmokeTests(t *testing.T) {
	srv := server.New(usecase.New(infra.New()))

	t.Run("GET /health returns 200", func(t *testing.T) {
		rec := serve(srv, http.MethodGet, "/health", nil, nil)
		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, rec.Body.String()).Equal("ok")
	})

	t.Run("GET /robots.txt disallows everything", func(t *testing.T) {
		rec := serve(srv, http.MethodGet, "/robots.txt", nil, nil)
		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, rec.Body.String()).Equal("User-agent: *\nDisallow: /")
	})

	t.Run("GET /metrics exposes counters", func(t *testing.T) {
		rec := serve(srv, http.MethodGet, "/metrics", nil, nil)
		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.S(t, rec.Body.String()).Contains("deptrack_http_requests_total")
	})
}

func TestTrack(t *testing.T) {
	t.Run("JSON ingest round trip", func(t *testing.T) {
		srv := newLocalServer(t)

		body := `{"repository_url":"` + repoURL + `","application_name":"app","application_uris":"app.example.com","unknown":"dropped"}`
		rec := serve(srv, http.MethodPost, "/api/v1/track", strings.NewReader(body), jsonHeader)
		gt.V(t, rec.Code).Equal(http.StatusCreated)
		gt.V(t, rec.Body.String()).Equal(`{"ok":true}`)

		hash := model.HashURL(repoURL)
		rec = serve(srv, http.MethodGet, "/stats/"+hash.String()+"/metrics.json", nil, nil)
		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, rec.Body.String()).Equal(`{"url_hash":"` + hash.String() + `","count":1}`)
	})

	t.Run("form ingest", func(t *testing.T) {
		srv := newLocalServer(t)

		form := url.Values{}
		form.Set("repository_url", repoURL)
		form.Add("application_uris", "a.example.com")
		form.Add("application_uris", "b.example.com")
		rec := serve(srv, http.MethodPost, "/", strings.NewReader(form.Encode()),
			map[string]string{"Content-Type": "application/x-www-form-urlencoded"})
		gt.V(t, rec.Code).Equal(http.StatusCreated)

		rec = serve(srv, http.MethodGet, "/repos", nil, nil)
		gt.V(t, rec.Body.String()).Equal(`["` + repoURL + `"]`)
	})

	t.Run("missing body is 400", func(t *testing.T) {
		srv := newLocalServer(t)
		rec := serve(srv, http.MethodPost, "/api/v1/track", nil, jsonHeader)
		gt.V(t, rec.Code).Equal(http.StatusBadRequest)

		rec = serve(srv, http.MethodPost, "/api/v1/track", strings.NewReader("null"), jsonHeader)
		gt.V(t, rec.Code).Equal(http.StatusBadRequest)

		rec = serve(srv, http.MethodPost, "/api/v1/track", strings.NewReader("{broken"), jsonHeader)
		gt.V(t, rec.Code).Equal(http.StatusBadRequest)

		rec = serve(srv, http.MethodGet, "/repos", nil, nil)
		gt.V(t, rec.Body.String()).Equal(`[]`)
	})

	t.Run("store failure is a generic 500", func(t *testing.T) {
		store := &mock.EventStoreMock{
			InsertFunc: func(ctx context.Context, event *model.Event) error {
				return errors.New("pq: connection refused to secret-host")
			},
		}
		srv := server.New(usecase.New(infra.New(infra.WithEventStore(store))), server.WithLocal(true))

		rec := serve(srv, http.MethodPost, "/api/v1/track", strings.NewReader(`{"repository_url":"x"}`), jsonHeader)
		gt.V(t, rec.Code).Equal(http.StatusInternalServerError)
		gt.V(t, rec.Body.String()).Equal(`{"error":"Internal Server Error"}`)
	})

	t.Run("no database is a generic 500", func(t *testing.T) {
		srv := server.New(usecase.New(infra.New()), server.WithLocal(true))
		rec := serve(srv, http.MethodPost, "/api/v1/track", strings.NewReader(`{}`), jsonHeader)
		gt.V(t, rec.Code).Equal(http.StatusInternalServerError)
		gt.V(t, rec.Body.String()).Equal(`{"error":"Internal Server Error"}`)
	})

	t.Run("track is not redirected to HTTPS", func(t *testing.T) {
		uc := usecase.New(infra.New(infra.WithEventStore(memory.NewEventStore())))
		srv := server.New(uc)
		rec := serve(srv, http.MethodPost, "/api/v1/track", strings.NewReader(`{}`), jsonHeader)
		gt.V(t, rec.Code).Equal(http.StatusCreated)
	})
}

func TestStats(t *testing.T) {
	srv := newLocalServer(t)
	for i := 0; i < 3; i++ {
		rec := serve(srv, http.MethodPost, "/api/v1/track", strings.NewReader(`{"repository_url":"`+repoURL+`"}`), jsonHeader)
		gt.V(t, rec.Code).Equal(http.StatusCreated)
	}
	hash := model.HashURL(repoURL)

	t.Run("overview", func(t *testing.T) {
		rec := serve(srv, http.MethodGet, "/stats", nil, nil)
		gt.V(t, rec.Code).Equal(http.StatusOK)

		var summaries []*model.RepoSummary
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
		gt.A(t, summaries).Length(1)
		gt.V(t, summaries[0].URL).Equal(repoURL)
		gt.V(t, summaries[0].Count).Equal(int64(3))
		gt.True(t, summaries[0].IsURL)
	})

	t.Run("csv", func(t *testing.T) {
		rec := serve(srv, http.MethodGet, "/stats.csv", nil, nil)
		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.S(t, rec.Header().Get("Content-Type")).Contains("text/csv")
		lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
		gt.A(t, lines).Length(2)
		gt.V(t, lines[0]).Equal("URL,Year,Month,Deployments")
		gt.S(t, lines[1]).Contains(repoURL + ",")
	})

	t.Run("detail with links", func(t *testing.T) {
		rec := serve(srv, http.MethodGet, "/stats/"+hash.String(), nil, map[string]string{"X-Forwarded-Proto": "https"})
		gt.V(t, rec.Code).Equal(http.StatusOK)

		var summaries []*model.RepoSummary
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
		gt.A(t, summaries).Length(1)
		gt.V(t, summaries[0].BadgeImageURL).Equal("https://example.com/stats/" + hash.String() + "/badge.svg")
		gt.V(t, summaries[0].ButtonMarkdown).Equal(
			"[![Deploy to Bluemix](https://example.com/stats/" + hash.String() + "/button.svg)](https://bluemix.net/deploy?repository=" + repoURL + ")")
	})

	t.Run("badge svg", func(t *testing.T) {
		rec := serve(srv, http.MethodGet, "/stats/"+hash.String()+"/badge.svg", nil, nil)
		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, rec.Header().Get("Content-Type")).Equal("image/svg+xml")
		// "3": right width 1*7.5+10
		gt.S(t, rec.Body.String()).Contains(`width="151"`)
		gt.S(t, rec.Body.String()).Contains(`>Bluemix Deployments<`)
		gt.S(t, rec.Body.String()).Contains(`>3<`)
	})

	t.Run("button svg", func(t *testing.T) {
		rec := serve(srv, http.MethodGet, "/stats/"+hash.String()+"/button.svg", nil, nil)
		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, rec.Header().Get("Content-Type")).Equal("image/svg+xml")
		gt.S(t, rec.Body.String()).Contains(`width="283"`)
		gt.S(t, rec.Body.String()).Contains(`>Deploy to Bluemix<`)
	})

	t.Run("unknown hash counts zero", func(t *testing.T) {
		rec := serve(srv, http.MethodGet, "/stats/ffff/metrics.json", nil, nil)
		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, rec.Body.String()).Equal(`{"url_hash":"ffff","count":0}`)
	})
}

func TestReputationEndpoint(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		srv := newLocalServer(t)
		rec := serve(srv, http.MethodGet, "/api/v1/stats?repo="+repoURL, nil, nil)
		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, rec.Body.String()).Equal(`{"error":"GITHUB_STATS_API_KEY is not set on the server"}`)
	})

	t.Run("proxied", func(t *testing.T) {
		mockUC := &mock.UseCaseMock{
			ReputationFunc: func(ctx context.Context, repo string) (json.RawMessage, error) {
				gt.V(t, repo).Equal(repoURL)
				return json.RawMessage(`{"stars":5}`), nil
			},
		}
		srv := server.New(mockUC, server.WithLocal(true))
		rec := serve(srv, http.MethodGet, "/api/v1/stats?repo="+url.QueryEscape(repoURL), nil, nil)
		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, rec.Body.String()).Equal(`{"stars":5}`)
	})

	t.Run("upstream failure", func(t *testing.T) {
		mockUC := &mock.UseCaseMock{
			ReputationFunc: func(ctx context.Context, repo string) (json.RawMessage, error) {
				return nil, types.ErrUpstream
			},
		}
		srv := server.New(mockUC, server.WithLocal(true))
		rec := serve(srv, http.MethodGet, "/api/v1/stats?repo=x", nil, nil)
		gt.V(t, rec.Code).Equal(http.StatusInternalServerError)
	})
}

func TestAuth(t *testing.T) {
	newServer := func(options ...server.Option) *server.Server {
		uc := usecase.New(infra.New(infra.WithEventStore(memory.NewEventStore())))
		return server.New(uc, options...)
	}
	https := map[string]string{"X-Forwarded-Proto": "https"}

	t.Run("plain HTTP is redirected", func(t *testing.T) {
		rec := serve(newServer(), http.MethodGet, "/stats?x=1", nil, nil)
		gt.V(t, rec.Code).Equal(http.StatusMovedPermanently)
		gt.V(t, rec.Header().Get("Location")).Equal("https://example.com/stats?x=1")
	})

	t.Run("unauthenticated gets 401", func(t *testing.T) {
		rec := serve(newServer(), http.MethodGet, "/stats", nil, https)
		gt.V(t, rec.Code).Equal(http.StatusUnauthorized)
	})

	t.Run("unauthenticated is sent to login", func(t *testing.T) {
		rec := serve(newServer(server.WithLoginURL("/oauth2/start")), http.MethodGet, "/stats", nil, https)
		gt.V(t, rec.Code).Equal(http.StatusFound)
		gt.V(t, rec.Header().Get("Location")).Equal("/oauth2/start")
	})

	t.Run("identity outside allowed domains gets 403", func(t *testing.T) {
		srv := newServer(server.WithAllowedDomains([]string{".ibm.com"}))
		rec := serve(srv, http.MethodGet, "/stats", nil, map[string]string{
			"X-Forwarded-Proto": "https",
			"X-Forwarded-Email": "someone@example.com",
		})
		gt.V(t, rec.Code).Equal(http.StatusForbidden)
	})

	t.Run("identity in allowed domain", func(t *testing.T) {
		srv := newServer(server.WithAllowedDomains([]string{".ibm.com"}))
		rec := serve(srv, http.MethodGet, "/api/v1/whoami", nil, map[string]string{
			"X-Forwarded-Proto": "https",
			"X-Forwarded-User":  "jdoe",
			"X-Forwarded-Email": "other@example.com, JDoe@us.IBM.com",
		})
		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, rec.Body.String()).Equal(`{"user":"jdoe","emails":["other@example.com","JDoe@us.IBM.com"]}`)
	})

	t.Run("custom identity headers", func(t *testing.T) {
		srv := newServer(
			server.WithAllowedDomains([]string{".ibm.com"}),
			server.WithIdentityHeaders("X-Auth-Request-User", "X-Auth-Request-Email"),
		)
		rec := serve(srv, http.MethodGet, "/stats", nil, map[string]string{
			"X-Forwarded-Proto":    "https",
			"X-Auth-Request-Email": "a@uk.ibm.com",
		})
		gt.V(t, rec.Code).Equal(http.StatusOK)
	})

	t.Run("badges are public", func(t *testing.T) {
		rec := serve(newServer(), http.MethodGet, "/stats/abcd/badge.svg", nil, https)
		gt.V(t, rec.Code).Equal(http.StatusOK)
	})

	t.Run("repos requires api key", func(t *testing.T) {
		srv := newServer(server.WithAPIKey("k3y"))

		rec := serve(srv, http.MethodGet, "/repos", nil, https)
		gt.V(t, rec.Code).Equal(http.StatusForbidden)
		gt.V(t, rec.Body.String()).Equal(`{"error":"A query string parameter apiKey must be set"}`)

		rec = serve(srv, http.MethodGet, "/repos?apiKey=wrong", nil, https)
		gt.V(t, rec.Code).Equal(http.StatusForbidden)
		gt.V(t, rec.Body.String()).Equal(`{"error":"Invalid api key"}`)

		rec = serve(srv, http.MethodGet, "/repos?apiKey=k3y", nil, https)
		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, rec.Body.String()).Equal(`[]`)
	})

	t.Run("local mode bypasses checks", func(t *testing.T) {
		srv := newServer(server.WithLocal(true), server.WithAPIKey("k3y"))

		rec := serve(srv, http.MethodGet, "/repos", nil, nil)
		gt.V(t, rec.Code).Equal(http.StatusOK)

		rec = serve(srv, http.MethodGet, "/api/v1/whoami", nil, nil)
		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, rec.Body.String()).Equal(`{"emails":[]}`)
	})
}

func TestTrackBodyLimit(t *testing.T) {
	srv := newLocalServer(t)
	big := bytes.Repeat([]byte("a"), 2<<20)
	body := append([]byte(`{"repository_url":"`), big...)
	body = append(body, []byte(`"}`)...)

	rec := serve(srv, http.MethodPost, "/api/v1/track", bytes.NewReader(body), jsonHeader)
	gt.V(t, rec.Code).Equal(http.StatusBadRequest)
}
