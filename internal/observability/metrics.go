package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for call handling.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	recordings    *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	gatherer      prometheus.Gatherer
}

// NewMetrics registers the collectors with the given registry.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		recordings: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voicecall",
			Name:      "recordings_total",
			Help:      "Recording callbacks handled, partitioned by outcome.",
		}, []string{"outcome"}),
		stageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "voicecall",
			Name:      "stage_duration_seconds",
			Help:      "Duration of upstream calls made while processing a recording.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 40},
		}, []string{"stage"}),
		gatherer: reg,
	}
}

// ObserveOutcome counts one processed recording callback.
func (m *Metrics) ObserveOutcome(outcome string) {
	if m == nil {
		return
	}
	m.recordings.WithLabelValues(outcome).Inc()
}

// ObserveStage records how long an upstream stage took.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
