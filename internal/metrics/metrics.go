// Package metrics exposes the Prometheus instruments for the chat pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ChatRequests counts chat messages received, property-related or not.
	ChatRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "home254_chat_requests_total",
		Help: "Total chat messages processed.",
	})

	// ChatFallbacks counts responses served from the recent-listings
	// fallback after an LLM transport failure.
	ChatFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "home254_chat_fallbacks_total",
		Help: "Chat responses served from the recent-listings fallback.",
	})

	// LLMFailures counts refinement calls that failed after retries.
	LLMFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "home254_llm_failures_total",
		Help: "LLM refinement calls that failed after retries.",
	})

	// ChatDuration observes end-to-end chat handling time in seconds.
	ChatDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "home254_chat_duration_seconds",
		Help:    "End-to-end chat handling duration.",
		Buckets: prometheus.DefBuckets,
	})
)
