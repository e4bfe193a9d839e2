package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ExchangesTotal counts exchanges by method and status code ("error" for transport failures)
	ExchangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tusk",
			Subsystem: "transport",
			Name:      "exchanges_total",
			Help:      "Total number of protocol exchanges",
		},
		[]string{"method", "status"},
	)

	// ExchangeDuration tracks how long an exchange took, including the transfer of its body
	ExchangeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tusk",
			Subsystem: "transport",
			Name:      "exchange_duration_seconds",
			Help:      "Duration of protocol exchanges",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// BytesSent tracks request body bytes handed to the transport
	BytesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tusk",
			Subsystem: "transport",
			Name:      "bytes_sent_total",
			Help:      "Total request body bytes sent",
		},
	)

	// RateLimitWait tracks time spent waiting for the bandwidth limiter
	RateLimitWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "tusk",
			Subsystem: "transport",
			Name:      "rate_limit_wait_seconds",
			Help:      "Time spent waiting for upload bandwidth",
			Buckets:   prometheus.DefBuckets,
		},
	)
)
