package grpc

import (
	"context"
	"errors"
	"github.com/prometheus/client_golang/prometheus"
	grpc2 "google.golang.org/grpc"
	"google.golang.org/grpc/status"
	"time"
)

type metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "litetable",
			Subsystem: "grpc",
			Name:      "requests_total",
			Help:      "gRPC requests by method and status code.",
		}, []string{"method", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "litetable",
			Subsystem: "grpc",
			Name:      "request_duration_seconds",
			Help:      "gRPC request latency.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}, []string{"method"}),
	}

	if reg == nil {
		return m
	}

	var are prometheus.AlreadyRegisteredError
	if err := reg.Register(m.requests); errors.As(err, &are) {
		m.requests = are.ExistingCollector.(*prometheus.CounterVec)
	}
	if err := reg.Register(m.latency); errors.As(err, &are) {
		m.latency = are.ExistingCollector.(*prometheus.HistogramVec)
	}
	return m
}

// unary records every request's status code and latency.
func (m *metrics) unary(ctx context.Context, req any, info *grpc2.UnaryServerInfo,
	handler grpc2.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	m.requests.WithLabelValues(info.FullMethod, status.Code(err).String()).Inc()
	m.latency.WithLabelValues(info.FullMethod).Observe(time.Since(start).Seconds())
	return resp, err
}
