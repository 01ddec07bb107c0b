package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stogie_post_like_toggles_total",
		Help: "Like toggles by outcome (liked, unliked, error).",
	}, []string{"result"})

	CommentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stogie_post_comments_created_total",
		Help: "Comments appended to posts.",
	})

	FeedQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stogie_feed_query_duration_seconds",
		Help:    "Latency of the aggregating feed query.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"filter"})

	httpRequests = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stogie_http_request_duration_seconds",
		Help:    "HTTP request latency by route and status code.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status_code"})
)

// HTTPMiddleware observes every request under its route template (/api/posts/:id/like),
// not the concrete path, to keep label cardinality bounded.
func HTTPMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" && r.Path != "/" {
			route = r.Path
		}
		httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler exposes the default registry for GET /metrics.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
