package apiclient

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// kindOK labels successful calls in the requests counter.
const kindOK = "ok"

type metrics struct {
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	invalidations *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "adminkit",
			Name:      "requests_total",
			Help:      "API calls by method and outcome kind.",
		}, []string{"method", "kind"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "adminkit",
			Name:      "request_duration_seconds",
			Help:      "API call latency, including calls that got no response.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		invalidations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "adminkit",
			Name:      "session_invalidations_total",
			Help:      "Sessions ended by the pipeline.",
		}, []string{"reason"}),
	}
}

func (m *metrics) observe(method, kind string, seconds float64) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, kind).Inc()
	m.duration.WithLabelValues(method).Observe(seconds)
}

func (m *metrics) invalidated(reason string) {
	if m == nil {
		return
	}
	m.invalidations.WithLabelValues(reason).Inc()
}
