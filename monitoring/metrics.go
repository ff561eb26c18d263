package monitoring

import "github.com/prometheus/client_golang/prometheus"

var (
	HttpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path"},
	)

	HttpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	ActiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_connections",
			Help: "Number of active connections",
		},
	)

	FeedCompositionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feed_composition_duration_seconds",
			Help:    "Duration of home feed composition",
			Buckets: prometheus.DefBuckets,
		},
	)

	FeedPostsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feed_posts_returned",
			Help:    "Number of posts returned per composed feed",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)
)

func Register() {
	prometheus.MustRegister(
		HttpRequestsTotal,
		HttpRequestDuration,
		ActiveConnections,
		FeedCompositionDuration,
		FeedPostsReturned,
	)
}
