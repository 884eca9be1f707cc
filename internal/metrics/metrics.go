package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DeliveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lingobot_deliveries_total",
		Help: "Total webhook deliveries received, labelled by outcome.",
	}, []string{"outcome"}) // accepted | bad_signature | bad_payload | wrong_object

	EventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lingobot_events_total",
		Help: "Total messaging events dispatched, labelled by kind and outcome.",
	}, []string{"kind", "outcome"}) // outcome: ok | error | skipped

	TranslationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lingobot_translations_total",
		Help: "Total translation backend calls, labelled by status.",
	}, []string{"status"})

	SendFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lingobot_send_failures_total",
		Help: "Total failed outbound calls to the messaging platform.",
	})

	LanguageChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lingobot_language_changes_total",
		Help: "Total change-language requests, labelled by status.",
	}, []string{"status"}) // ok | unknown_language | error

	EventDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lingobot_event_duration_seconds",
		Help:    "Per-event handling latency, including downstream calls.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})
)
