package reputation_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Spencerx/metrics-collector-service/pkg/domain/types"
	"github.com/Spencerx/metrics-collector-service/pkg/infra/reputation"
	"github.com/m-mizutani/gt"
)

func TestUpstreamGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.V(t, r.URL.Query().Get("apiKey")).Equal("secret")
		gt.V(t, r.URL.Query().Get("repo")).Equal("https://github.com/a/b")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"stars":10,"forks":2}`))
	}))
	defer srv.Close()

	upstream := gt.R1(reputation.NewUpstream(srv.URL, "secret", srv.Client())).NoError(t)
	data := gt.R1(upstream.Get(context.Background(), "https://github.com/a/b")).NoError(t)
	gt.V(t, string(data)).Equal(`{"stars":10,"forks":2}`)
}

func TestUpstreamStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	upstream := gt.R1(reputation.NewUpstream(srv.URL, "secret", srv.Client())).NoError(t)
	_, err := upstream.Get(context.Background(), "r")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrUpstream))
}

func TestUpstreamNotJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	upstream := gt.R1(reputation.NewUpstream(srv.URL, "secret", srv.Client())).NoError(t)
	_, err := upstream.Get(context.Background(), "r")
	gt.True(t, errors.Is(err, types.ErrUpstream))
}

func TestNewUpstreamRequiresKey(t *testing.T) {
	_, err := reputation.NewUpstream(reputation.DefaultEndpoint, "", nil)
	gt.True(t, errors.Is(err, types.ErrInvalidOption))
}
