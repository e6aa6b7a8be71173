// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ecoquery"

// Job lifecycle, labelled by Zeebe task type.
var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "worker",
			Name:      "jobs_completed_total",
			Help:      "Jobs completed, by task type",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "worker",
			Name:      "jobs_failed_total",
			Help:      "Jobs failed or thrown, by task type and error code",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "worker",
			Name:      "job_duration_seconds",
			Help:      "Time from job activation to completion",
			Buckets:   []float64{.005, .01, .05, .1, .5, 1, 2.5, 5, 10, 20},
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "worker",
			Name:      "jobs_active",
			Help:      "Jobs currently being handled",
		},
		[]string{"task_type"},
	)
)

// Translation pipeline.
var (
	TranslationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "translator",
			Name:      "translations_total",
			Help:      "Questions translated, by domain and producing path",
		},
		[]string{"domain", "source"},
	)

	GenAIAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "translator",
			Name:      "genai_attempts_total",
			Help:      "Calls to the generative service by outcome",
		},
		[]string{"outcome"},
	)

	FallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "translator",
			Name:      "fallbacks_total",
			Help:      "Deterministic fallbacks by reason",
		},
		[]string{"reason"},
	)

	TranslationConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "translator",
			Name:      "confidence",
			Help:      "Confidence attached to translation results",
			Buckets:   []float64{0.5, 0.65, 0.8, 0.85, 0.95, 1.0},
		},
	)
)
