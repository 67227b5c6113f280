package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce       sync.Once
	apiRequestsTotal   *prometheus.CounterVec
	apiLatencySeconds  *prometheus.HistogramVec
	apiErrorsTotal     *prometheus.CounterVec
	messagesSentTotal  *prometheus.CounterVec
	reactionsTotal     *prometheus.CounterVec
	authEventsTotal    *prometheus.CounterVec
	reactionCacheTotal *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors exposed by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sarhne_api_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sarhne_api_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sarhne_api_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		messagesSentTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sarhne_messages_sent_total",
			Help: "Messages persisted, split by secrecy and sender authentication.",
		}, []string{"secret", "authenticated"})

		reactionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sarhne_reactions_total",
			Help: "Reactions applied to messages, split by whether an existing reaction was replaced.",
		}, []string{"outcome"})

		authEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sarhne_auth_events_total",
			Help: "Authentication flow outcomes.",
		}, []string{"flow", "outcome"})

		reactionCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sarhne_reaction_catalog_cache_total",
			Help: "Reaction catalog cache lookups by result.",
		}, []string{"result"})

		prometheus.MustRegister(
			apiRequestsTotal,
			apiLatencySeconds,
			apiErrorsTotal,
			messagesSentTotal,
			reactionsTotal,
			authEventsTotal,
			reactionCacheTotal,
		)
	})
}

// APIRequests exposes the counter for API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for API error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// MessagesSent exposes the counter of persisted messages.
func MessagesSent() *prometheus.CounterVec {
	RegisterMetrics()
	return messagesSentTotal
}

// Reactions exposes the counter of applied reactions.
func Reactions() *prometheus.CounterVec {
	RegisterMetrics()
	return reactionsTotal
}

// AuthEvents exposes the counter of register, login, refresh and revoke outcomes.
func AuthEvents() *prometheus.CounterVec {
	RegisterMetrics()
	return authEventsTotal
}

// ReactionCache exposes the counter of reaction catalog cache hits and misses.
func ReactionCache() *prometheus.CounterVec {
	RegisterMetrics()
	return reactionCacheTotal
}
