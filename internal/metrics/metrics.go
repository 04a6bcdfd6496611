package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "food_tracker",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "food_tracker",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "food_tracker",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	usageLogs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "food_tracker",
			Subsystem: "ledger",
			Name:      "usage_logs_total",
			Help:      "Total number of recorded usage log entries.",
		},
		[]string{"action"},
	)

	usageQuantity = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "food_tracker",
			Subsystem: "ledger",
			Name:      "consumed_quantity_total",
			Help:      "Total quantity taken out of the pantry.",
		},
		[]string{"action"},
	)

	offersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "food_tracker",
			Subsystem: "donation",
			Name:      "offers_created_total",
			Help:      "Total number of donation offers created.",
		},
	)

	offerTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "food_tracker",
			Subsystem: "donation",
			Name:      "offer_transitions_total",
			Help:      "Total number of donation offer status changes.",
		},
		[]string{"status"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		usageLogs,
		usageQuantity,
		offersCreated,
		offerTransitions,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler exposes the registered collectors on a fiber route.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}

// Middleware records request counts and latency per route pattern.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}

		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		path := c.Route().Path
		if path == "" || path == "/" {
			path = canonicalPath(c.Path())
		}
		method := strings.ToUpper(c.Method())

		httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		return err
	}
}

// RecordUsageLog counts a committed usage log entry.
func RecordUsageLog(action string, quantity float64) {
	usageLogs.WithLabelValues(action).Inc()
	usageQuantity.WithLabelValues(action).Add(quantity)
}

func RecordOfferCreated() {
	offersCreated.Inc()
}

func RecordOfferTransition(status string) {
	offerTransitions.WithLabelValues(status).Inc()
}

// canonicalPath keeps unmatched paths from exploding label cardinality.
func canonicalPath(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) > 3 {
		segments = segments[:3]
	}
	return "/" + strings.Join(segments, "/")
}
