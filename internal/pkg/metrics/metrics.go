package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sarscope",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sarscope",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.005, 0.025, 0.1, 0.5, 1, 5, 15, 30, 60},
	}, []string{"method", "path"})

	// Lookup pipeline metrics
	CatalogQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sarscope",
		Subsystem: "lookup",
		Name:      "catalog_queries_total",
		Help:      "Catalog searches by outcome (ok, empty, no_previews, error)",
	}, []string{"outcome"})

	EnrichmentFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sarscope",
		Subsystem: "lookup",
		Name:      "enrichment_failures_total",
		Help:      "Absorbed vision enrichment failures by stage (colors, tags)",
	}, []string{"stage"})

	Interpretations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sarscope",
		Subsystem: "lookup",
		Name:      "interpretations_total",
		Help:      "LLM interpretation calls by outcome (ok, error)",
	}, []string{"outcome"})

	UpstreamCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sarscope",
		Subsystem: "upstream",
		Name:      "call_duration_seconds",
		Help:      "Outbound call latency by service (asf, imagga, openai)",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
	}, []string{"service"})
)

// ObserveUpstream records the duration of one outbound call.
func ObserveUpstream(service string, start time.Time) {
	UpstreamCallDuration.WithLabelValues(service).Observe(time.Since(start).Seconds())
}

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

		return err
	}
}

// Handler returns a Fiber handler serving the Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}
