package search

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	issuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "moviehub",
		Subsystem: "search",
		Name:      "requests_issued_total",
		Help:      "Searches sent to the catalog after the quiet interval.",
	})

	staleTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "moviehub",
		Subsystem: "search",
		Name:      "responses_stale_total",
		Help:      "Responses dropped because a newer search was issued or the query was cleared.",
	})

	failuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "moviehub",
		Subsystem: "search",
		Name:      "failures_total",
		Help:      "Latest searches that failed; results were cleared.",
	})
)
