// Package observability exposes the service's Prometheus metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	HTTPRequests   *prometheus.CounterVec
	LLMCallSeconds *prometheus.HistogramVec
	ToolCalls      *prometheus.CounterVec
	SearchSeconds  prometheus.Histogram
}

// NewMetrics registers all collectors against reg. Tests pass a fresh
// registry so collectors never collide.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		LLMCallSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_call_seconds",
			Help:      "Latency of chat-completion calls by outcome.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
		}, []string{"outcome"}),
		ToolCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assistant_tool_calls_total",
			Help:      "Capability invocations requested by the assistant.",
		}, []string{"tool"}),
		SearchSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_search_seconds",
			Help:      "Latency of catalog searches.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
