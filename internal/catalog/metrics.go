package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "moviehub",
			Subsystem: "catalog",
			Name:      "requests_total",
			Help:      "Catalog API calls by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)

	requestSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "moviehub",
			Subsystem: "catalog",
			Name:      "request_duration_seconds",
			Help:      "Catalog API latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint", "outcome"},
	)
)

func outcome(err error) string {
	var se *StatusError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.As(err, &se):
		return "status"
	default:
		return "error"
	}
}

func observe(endpoint string, start time.Time, err error) {
	o := outcome(err)
	requestsTotal.WithLabelValues(endpoint, o).Inc()
	requestSeconds.WithLabelValues(endpoint, o).Observe(time.Since(start).Seconds())
}
