package infra

import (
	"net/http"

	"github.com/Spencerx/metrics-collector-service/pkg/domain/interfaces"
)

type Clients struct {
	eventStore interfaces.EventStore
	reputation interfaces.Reputation
	httpClient HTTPClient
	bqClient   interfaces.BigQuery
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Option func(*Clients)

func New(options ...Option) *Clients {
	client := &Clients{
		httpClient: http.DefaultClient,
	}

	for _, opt := range options {
		opt(client)
	}

	return client
}

// EventStore returns nil when no database is bound.
func (x *Clients) EventStore() interfaces.EventStore {
	return x.eventStore
}

// Reputation returns nil when reputation lookup is not wired at all.
func (x *Clients) Reputation() interfaces.Reputation {
	return x.reputation
}
func (x *Clients) HTTPClient() HTTPClient {
	return x.httpClient
}
func (x *Clients) BigQuery() interfaces.BigQuery {
	return x.bqClient
}

func WithEventStore(store interfaces.EventStore) Option {
	return func(x *Clients) {
		x.eventStore = store
	}
}

func WithReputation(client interfaces.Reputation) Option {
	return func(x *Clients) {
		x.reputation = client
	}
}

func WithHTTPClient(client HTTPClient) Option {
	return func(x *Clients) {
		x.httpClient = client
	}
}

func WithBigQuery(client interfaces.BigQuery) Option {
	return func(x *Clients) {
		x.bqClient = client
	}
}
