package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts served requests by route pattern and status class.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_http_requests_total",
			Help: "HTTP requests by route and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "folio_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ReviewsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_reviews_submitted_total",
			Help: "Review submissions by outcome",
		},
		[]string{"outcome"},
	)

	ReviewCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_review_cache_lookups_total",
			Help: "Review list cache lookups by result",
		},
		[]string{"result"},
	)

	// UnapprovedFiltered counts rows the testimonial query returned although
	// they were not approved.
	UnapprovedFiltered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "folio_testimonials_unapproved_filtered_total",
			Help: "Unapproved rows dropped from the testimonial feed after the query",
		},
	)

	ContactMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_contact_messages_total",
			Help: "Contact form submissions by outcome",
		},
		[]string{"outcome"},
	)

	AccentChanges = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "folio_accent_changes_total",
			Help: "Accent colour selections",
		},
	)
)
