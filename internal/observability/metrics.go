// Package observability holds the Prometheus collectors shared across the
// service. Collectors are registered once at package init via promauto.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AIRequests counts completion upstream calls by outcome class.
	AIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studyhub_ai_requests_total",
		Help: "Completion upstream calls by outcome.",
	}, []string{"outcome"})

	// VideoSearches counts video-search upstream calls by outcome class.
	VideoSearches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studyhub_video_searches_total",
		Help: "Video search upstream calls by outcome.",
	}, []string{"outcome"})

	// StudyMinutes counts study minutes credited to usage counters, by
	// action type.
	StudyMinutes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studyhub_study_minutes_total",
		Help: "Study minutes credited, by action.",
	}, []string{"action"})

	// SideEffectFailures counts swallowed best-effort side-effect failures.
	SideEffectFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studyhub_side_effect_failures_total",
		Help: "Best-effort side effect failures by kind.",
	}, []string{"kind"})
)
