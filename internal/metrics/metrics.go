package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Using promauto automatically registers metrics with the default registry.

var (
	// HTTPRequestDuration tracks the duration of HTTP requests.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path", "status"},
	)

	// URLsCreatedTotal counts URLs created.
	URLsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "urls_created_total",
			Help: "Total number of short URLs created",
		},
	)

	// RedirectsTotal counts successful redirects.
	RedirectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "redirects_total",
			Help: "Total number of successful redirects",
		},
	)

	// ClicksPublishedTotal counts click events accepted by the broker.
	ClicksPublishedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clicks_published_total",
			Help: "Total number of click events published",
		},
	)

	// ClickPublishFailuresTotal counts publishes that never reached the broker.
	ClickPublishFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "click_publish_failures_total",
			Help: "Total number of click event publish failures",
		},
	)

	// ClicksRecordedTotal counts click records persisted by the tracker.
	ClicksRecordedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clicks_recorded_total",
			Help: "Total number of click records persisted",
		},
	)

	// ClicksDroppedTotal counts malformed click events permanently dropped.
	ClicksDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clicks_dropped_total",
			Help: "Total number of malformed click events dropped",
		},
	)

	// TrackerBatchesTotal counts processed batches by outcome.
	TrackerBatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_batches_total",
			Help: "Total number of click batches processed, by outcome",
		},
		[]string{"outcome"}, // ok, redelivered
	)

	// RateLimitedRequestsTotal counts rate-limited requests.
	RateLimitedRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_limited_requests_total",
			Help: "Total number of rate-limited requests",
		},
	)
)

// RecordURLCreated increments the URL creation counter.
func RecordURLCreated() {
	URLsCreatedTotal.Inc()
}

// RecordRedirect increments the redirect counter.
func RecordRedirect() {
	RedirectsTotal.Inc()
}

// RecordClickPublished increments the publish counter.
func RecordClickPublished() {
	ClicksPublishedTotal.Inc()
}

// RecordPublishFailure increments the publish failure counter.
func RecordPublishFailure() {
	ClickPublishFailuresTotal.Inc()
}

// RecordClickRecorded increments the persisted click counter.
func RecordClickRecorded() {
	ClicksRecordedTotal.Inc()
}

// RecordClickDropped increments the dropped click counter.
func RecordClickDropped() {
	ClicksDroppedTotal.Inc()
}

// RecordBatch records a batch outcome ("ok" or "redelivered").
func RecordBatch(outcome string) {
	TrackerBatchesTotal.WithLabelValues(outcome).Inc()
}

// RecordRateLimited increments the rate-limited requests counter.
func RecordRateLimited() {
	RateLimitedRequestsTotal.Inc()
}
