package client

import (
	"errors"
	"github.com/prometheus/client_golang/prometheus"
	"time"
)

const (
	opInsert     = "insert"
	opDelete     = "delete"
	opSlice      = "get_slice"
	opSliceMulti = "get_slice_multi"
)

type metrics struct {
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "litetable",
			Subsystem: "client",
			Name:      "operations_total",
			Help:      "Store client operations by result.",
		}, []string{"operation", "result"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "litetable",
			Subsystem: "client",
			Name:      "operation_duration_seconds",
			Help:      "Store client operation latency.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}, []string{"operation"}),
	}

	if reg == nil {
		return m
	}

	// a second client on the same registry shares the first one's collectors
	var are prometheus.AlreadyRegisteredError
	if err := reg.Register(m.operations); errors.As(err, &are) {
		m.operations = are.ExistingCollector.(*prometheus.CounterVec)
	}
	if err := reg.Register(m.latency); errors.As(err, &are) {
		m.latency = are.ExistingCollector.(*prometheus.HistogramVec)
	}
	return m
}

func (m *metrics) observe(op string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.operations.WithLabelValues(op, result).Inc()
	m.latency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
