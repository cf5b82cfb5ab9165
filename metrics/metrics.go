package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TicketsCreated The total number of assistance tickets opened (counter)
	TicketsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tickets",
			Name:      "created_total",
			Help:      "The total number of assistance tickets opened",
		},
	)

	// TicketsResolved The total number of tickets answered by an operator (counter)
	TicketsResolved = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tickets",
			Name:      "resolved_total",
			Help:      "The total number of tickets answered by an operator",
		},
	)

	// TicketsExpired The total number of tickets that timed out or were reaped unanswered (counter)
	TicketsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tickets",
			Name:      "expired_total",
			Help:      "The total number of tickets that timed out or were reaped unanswered",
		},
	)

	// NotificationFailures The total number of failed operator notifications (counter)
	NotificationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "notifications",
			Name:      "failed_total",
			Help:      "The total number of failed operator notifications",
		},
	)

	// MessagesProcessed The total number of processed messages (counter)
	MessagesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "messages",
			Name:      "processed_total",
			Help:      "The total number of processed messages",
		},
		[]string{"topic", "handler"},
	)

	// MessagesProcessingFailed total number of message processing failures (counter)
	MessagesProcessingFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "messages",
			Name:      "processing_failed_total",
			Help:      "The total number of message processing failures",
		},
		[]string{"topic", "handler"},
	)

	// MessagesProcessingDuration The total time spent processing messages (summary with quantiles 0.5, 0.9, and 0.99)
	MessagesProcessingDuration = promauto.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace:  "messages",
			Name:       "processing_duration_seconds",
			Help:       "The total time spent processing messages",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"topic", "handler"},
	)
)
