package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "deptrack"

var registry = prometheus.NewRegistry()

var (
	EventsTracked = register(prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_tracked_total",
		Help:      "Number of deployment events submitted, by result.",
	}, []string{"result"}))

	ReputationLookups = register(prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reputation_lookups_total",
		Help:      "Reputation lookups, by cache result (hit, miss, error).",
	}, []string{"result"}))

	ArchiveFailures = register(prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "archive_failures_total",
		Help:      "Events that could not be mirrored to the archive.",
	}))

	HTTPRequests = register(prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests, by method and status code.",
	}, []string{"method", "code"}))
)

// Result labels
const (
	ResultOK    = "ok"
	ResultError = "error"
	ResultHit   = "hit"
	ResultMiss  = "miss"
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

func register[T prometheus.Collector](c T) T {
	registry.MustRegister(c)
	return c
}

// Handler serves the /metrics scrape endpoint.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
