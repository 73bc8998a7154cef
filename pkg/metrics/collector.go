// Package metrics exposes Prometheus collectors for the bot.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	botCommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_commands_total",
			Help: "Total number of bot commands received labeled by command and status",
		},
		[]string{"command", "status"},
	)
	commandDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "command_duration_seconds",
			Help:    "Duration of bot commands in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"command"},
	)
	apiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coingecko_requests_total",
			Help: "Total number of CoinGecko API requests labeled by endpoint and status",
		},
		[]string{"endpoint", "status"},
	)
	apiRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "coingecko_request_duration_seconds",
			Help:    "Duration of CoinGecko API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
	catalogSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_entries",
			Help: "Number of cached catalog entries per catalog",
		},
		[]string{"catalog"},
	)
	rateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_limited_updates_total",
			Help: "Total number of updates rejected by the rate limiter",
		},
	)
)

// RecordCommand increments command counters and records duration.
func RecordCommand(command, status string, duration time.Duration) {
	if command == "" {
		command = "unknown"
	}
	if status == "" {
		status = "unknown"
	}

	botCommandsTotal.WithLabelValues(command, status).Inc()
	commandDurationSeconds.WithLabelValues(command).Observe(duration.Seconds())
}

// RecordAPIRequest increments upstream API counters and records duration.
func RecordAPIRequest(endpoint, status string, duration time.Duration) {
	apiRequestsTotal.WithLabelValues(endpoint, status).Inc()
	apiRequestDurationSeconds.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// SetCatalogSize records the number of entries held by a catalog cache.
func SetCatalogSize(catalog string, n int) {
	catalogSize.WithLabelValues(catalog).Set(float64(n))
}

// RecordRateLimited counts an update dropped by the rate limiter.
func RecordRateLimited() {
	rateLimitedTotal.Inc()
}
