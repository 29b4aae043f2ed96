package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// NewCounter registers the outcome counters on the default registry served at /metrics.
func NewCounter() *prometheus.CounterVec {
	return NewCounterWith(prometheus.DefaultRegisterer)
}

func NewCounterWith(reg prometheus.Registerer) *prometheus.CounterVec {
	return promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "projectmanager",
			Name:      "general_counters",
		},
		[]string{"result"})
}
