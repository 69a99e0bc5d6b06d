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
		Namespace: "textmaps",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "textmaps",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	// Inbound message metrics
	InboundMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "textmaps",
		Subsystem: "sms",
		Name:      "inbound_messages_total",
		Help:      "Total inbound messages by classified kind",
	}, []string{"kind"})

	// Delivery pipeline metrics
	PagesDelivered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "textmaps",
		Subsystem: "delivery",
		Name:      "pages_total",
		Help:      "Total direction pages delivered",
	})

	StepsSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "textmaps",
		Subsystem: "delivery",
		Name:      "steps_sent_total",
		Help:      "Total direction step messages sent",
	})

	SendFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "textmaps",
		Subsystem: "delivery",
		Name:      "send_failures_total",
		Help:      "Total outbound message sends that failed",
	})

	// Upstream backend metrics
	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "textmaps",
		Subsystem: "upstream",
		Name:      "request_duration_seconds",
		Help:      "Latency of geocoding and directions backend calls",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"backend"})

	UpstreamErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "textmaps",
		Subsystem: "upstream",
		Name:      "errors_total",
		Help:      "Total geocoding and directions backend failures",
	}, []string{"backend"})

	// Work queue metrics
	JobsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "textmaps",
		Subsystem: "jobs",
		Name:      "enqueued_total",
		Help:      "Total continuation delivery jobs enqueued",
	})

	JobsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "textmaps",
		Subsystem: "jobs",
		Name:      "processed_total",
		Help:      "Total continuation delivery jobs processed by the worker",
	}, []string{"outcome"})
)

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)

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
