package manager

import "github.com/prometheus/client_golang/prometheus"

var (
	modelLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "whisperd",
			Subsystem: "model",
			Name:      "loads_total",
			Help:      "Successful whisper model loads",
		},
		[]string{"model", "compute_type"},
	)

	modelLoadFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "whisperd",
			Subsystem: "model",
			Name:      "load_failures_total",
			Help:      "Failed engine construction attempts",
		},
		[]string{"model", "compute_type"},
	)

	transcriptionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "whisperd",
			Subsystem: "transcribe",
			Name:      "requests_total",
			Help:      "Transcriptions by outcome",
		},
		[]string{"model", "outcome"},
	)

	transcriptionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "whisperd",
			Subsystem: "transcribe",
			Name:      "duration_seconds",
			Help:      "Wall-clock duration of engine transcriptions",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
		},
		[]string{"model"},
	)
)

func init() {
	prometheus.MustRegister(modelLoadsTotal, modelLoadFailures, transcriptionsTotal, transcriptionDuration)
}
