// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pdiddy/orquideira/pkg/types"
)

var (
	searchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orquideira_searches_total",
		Help: "Searches by mode and outcome.",
	}, []string{"mode", "outcome"})

	searchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "orquideira_search_duration_seconds",
		Help:    "End-to-end search duration, enrichment included.",
		Buckets: prometheus.DefBuckets,
	}, []string{"mode"})

	enrichmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orquideira_enrichments_total",
		Help: "Profile registry lookups by outcome.",
	}, []string{"outcome"})

	upstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "orquideira_upstream_request_duration_seconds",
		Help:    "Duration of requests to external APIs.",
		Buckets: prometheus.DefBuckets,
	}, []string{"service"})
)

func observeSearch(mode types.SearchMode, err error, took time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	searchesTotal.WithLabelValues(string(mode), outcome).Inc()
	searchDuration.WithLabelValues(string(mode)).Observe(took.Seconds())
}

func observeUpstream(service string, start time.Time) {
	upstreamDuration.WithLabelValues(service).Observe(time.Since(start).Seconds())
}
