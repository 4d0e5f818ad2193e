package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ExtractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "metadata_extractor",
		Name:      "extractions_total",
		Help:      "Handled upload notifications by outcome.",
	}, []string{"status"})

	ExtractionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "metadata_extractor",
		Name:      "extraction_duration_seconds",
		Help:      "Time spent handling one upload notification.",
		Buckets:   prometheus.DefBuckets,
	})

	OutboxPublishedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "metadata_extractor",
		Name:      "outbox_published_total",
		Help:      "Completion events published by the relay.",
	})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "metadata_extractor",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "path", "status"})
)

// ObserveExtraction records the outcome and duration of one handled
// notification.
func ObserveExtraction(statusCode int, elapsed time.Duration) {
	status := "processed"
	if statusCode != http.StatusOK {
		status = "failed"
	}

	ExtractionsTotal.WithLabelValues(status).Inc()
	ExtractionDuration.Observe(elapsed.Seconds())
}

// Middleware counts HTTP requests per route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		HTTPRequestsTotal.WithLabelValues(
			c.Method(),
			c.Route().Path,
			strconv.Itoa(c.Response().StatusCode()),
		).Inc()

		return err
	}
}

// Register attaches the Prometheus metrics endpoint to the app.
func Register(app *fiber.App, path string) {
	app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
}
