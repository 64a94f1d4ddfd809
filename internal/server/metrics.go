package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "placepix_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "endpoint", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "placepix_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint"})

	imagesRenderedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "placepix_images_rendered_total",
		Help: "Total number of image requests by outcome",
	}, []string{"status"})

	renderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "placepix_render_duration_seconds",
		Help:    "Time spent rendering a placeholder image",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	})

	imageSizeBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "placepix_image_size_bytes",
		Help:    "Encoded PNG size in bytes",
		Buckets: prometheus.ExponentialBuckets(256, 4, 10),
	})

	rateLimitHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "placepix_rate_limit_hits_total",
		Help: "Requests rejected by rate limiting or quotas",
	}, []string{"type"})

	statsResetsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "placepix_stats_resets_total",
		Help: "Number of times the stats collections were cleared",
	})

	websocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "placepix_websocket_connections",
		Help: "Currently open live stats connections",
	})

	websocketMessagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "placepix_websocket_messages_total",
		Help: "Snapshot messages pushed over live stats connections",
	})
)
