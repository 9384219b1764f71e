package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Generation Prometheus metrics.
var (
	GenerationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_requests_total",
			Help:      "Total number of generation requests sent to the provider",
		},
		[]string{"provider", "model", "status"},
	)

	GenerationRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_request_duration_seconds",
			Help:      "Generation request duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30, 60},
		},
		[]string{"provider", "model"},
	)

	GenerationTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_tokens_total",
			Help:      "Total generation tokens consumed",
		},
		[]string{"provider", "model", "type"}, // "prompt" / "output"
	)

	GenerationErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_errors_total",
			Help:      "Total generation errors",
		},
		[]string{"provider", "model", "error_type"},
	)

	SearchOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_outcomes_total",
			Help:      "Search requests by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)
)

// Search outcome label values.
const (
	OutcomeOK               = "ok"
	OutcomeNotConfigured    = "not_configured"
	OutcomeProviderFailure  = "provider_failure"
	OutcomeContractViolated = "contract_violation"
)

var genMetricsOnce sync.Once

// RegisterGenerationMetrics registers Prometheus generation metrics. Repeated calls are no-ops.
func RegisterGenerationMetrics() {
	genMetricsOnce.Do(func() {
		prometheus.MustRegister(GenerationRequestsTotal)
		prometheus.MustRegister(GenerationRequestDuration)
		prometheus.MustRegister(GenerationTokensTotal)
		prometheus.MustRegister(GenerationErrorsTotal)
		prometheus.MustRegister(SearchOutcomesTotal)
	})
}
