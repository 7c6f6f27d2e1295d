package infra_test

import (
	"net/http"
	"testing"

	"github.com/Spencerx/metrics-collector-service/pkg/domain/mock"
	"github.com/Spencerx/metrics-collector-service/pkg/infra"
	"github.com/m-mizutani/gt"
)

func TestNew(t *testing.T) {
	t.Run("create new clients without options", func(t *testing.T) {
		clients := infra.New()
		gt.V(t, clients.HTTPClient()).Equal(http.DefaultClient)
		// Backends should be nil without configuration
		gt.V(t, clients.EventStore()).Equal(nil)
		gt.V(t, clients.Reputation()).Equal(nil)
		gt.V(t, clients.BigQuery()).Equal(nil)
	})

	t.Run("WithEventStore option sets event store", func(t *testing.T) {
		store := &mock.EventStoreMock{}
		clients := infra.New(infra.WithEventStore(store))
		gt.V(t, clients.EventStore()).Equal(store)
	})

	t.Run("WithReputation option sets reputation client", func(t *testing.T) {
		rep := &mock.ReputationMock{}
		clients := infra.New(infra.WithReputation(rep))
		gt.V(t, clients.Reputation()).Equal(rep)
	})

	t.Run("WithHTTPClient option sets HTTP client", func(t *testing.T) {
		mockHTTP := &mockHTTPClient{}
		clients := infra.New(infra.WithHTTPClient(mockHTTP))
		gt.V(t, clients.HTTPClient()).Equal(mockHTTP)
	})

	t.Run("multiple options can be combined", func(t *testing.T) {
		store := &mock.EventStoreMock{}
		mockBQ := &mock.BigQueryMock{}
		rep := &mock.ReputationMock{}

		clients := infra.New(
			infra.WithEventStore(store),
			infra.WithBigQuery(mockBQ),
			infra.WithReputation(rep),
		)

		gt.V(t, clients.EventStore()).Equal(store)
		gt.V(t, clients.BigQuery()).Equal(mockBQ)
		gt.V(t, clients.Reputation()).Equal(rep)
	})
}

type mockHTTPClient struct{}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return nil, nil
}
