package tripapi

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fasttrip",
			Subsystem: "tripapi",
			Name:      "requests_total",
			Help:      "Outbound calls to the trip API by endpoint, method and outcome.",
		}, []string{"endpoint", "method", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fasttrip",
			Subsystem: "tripapi",
			Name:      "request_duration_seconds",
			Help:      "Latency of outbound calls to the trip API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint", "method"}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.latency)
	}
	return m
}
