package usecase

import (
	"github.com/Spencerx/metrics-collector-service/pkg/domain/interfaces"
	"github.com/Spencerx/metrics-collector-service/pkg/domain/types"
	"github.com/Spencerx/metrics-collector-service/pkg/infra"
	"github.com/m-mizutani/goerr/v2"
)

const DefaultConcurrency = 8

type UseCase struct {
	clients     *infra.Clients
	concurrency int
}

var _ interfaces.UseCase = (*UseCase)(nil)

type Option func(*UseCase)

// WithConcurrency bounds the number of reputation lookups in flight during
// Overview.
func WithConcurrency(n int) Option {
	return func(x *UseCase) {
		if n > 0 {
			x.concurrency = n
		}
	}
}

func New(clients *infra.Clients, options ...Option) *UseCase {
	uc := &UseCase{
		clients:     clients,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range options {
		opt(uc)
	}
	return uc
}

func (x *UseCase) eventStore() (interfaces.EventStore, error) {
	store := x.clients.EventStore()
	if store == nil {
		return nil, goerr.Wrap(types.ErrUnconfigured, "no database server configured")
	}
	return store, nil
}
