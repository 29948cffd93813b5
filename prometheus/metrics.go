package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// Signup counter
	SignupCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rental_signup_total",
			Help: "Total number of signup attempts",
		},
	)

	// Login counter
	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rental_login_total",
			Help: "Total number of login attempts",
		},
	)

	// Property operation counter
	PropertyOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rental_property_operations_total",
			Help: "Total number of property catalog operations",
		},
		[]string{"operation"}, // operation can be "create", "update", "delete", "list", "get"
	)

	// Booking request counter
	BookingCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rental_booking_requests_total",
			Help: "Total number of booking requests",
		},
	)

	// Booking decision counter
	BookingDecisionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rental_booking_decisions_total",
			Help: "Total number of booking status decisions",
		},
		[]string{"status"}, // status can be "approved", "rejected", "cancelled"
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rental_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	// Error counter by taxonomy kind
	RentalErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rental_errors_total",
			Help: "Total number of rental service errors",
		},
		[]string{"kind"}, // kind matches the error taxonomy, e.g. "not_found", "invalid_transition"
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rental_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rental_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // operation can be "query", "insert", "update", "delete"
	)
)

// Gauge metrics
var (
	// Active listings
	ActiveListingsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rental_active_listings",
			Help: "Number of currently available property listings",
		},
	)

	// System info
	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "rental_info",
			Help: "Information about the rental service",
		},
		[]string{"version"},
	)
)

func init() {
	// Register counters
	prometheus.MustRegister(SignupCounter)
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(PropertyOperationCounter)
	prometheus.MustRegister(BookingCounter)
	prometheus.MustRegister(BookingDecisionCounter)
	prometheus.MustRegister(HTTPRequestCounter)
	prometheus.MustRegister(RentalErrorCounter)

	// Register histograms
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DBOperationDuration)

	// Register gauges
	prometheus.MustRegister(ActiveListingsGauge)
	prometheus.MustRegister(InfoGauge)

	// Set initial service info
	InfoGauge.With(prometheus.Labels{"version": "1.0.0"}).Set(1)
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// TrackDBOperation measures database operation durations
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Execute the request handler
			err := next(c)

			// Record request duration
			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			endpoint := c.Path()
			method := c.Request().Method

			RequestDuration.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Observe(duration)

			HTTPRequestCounter.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Inc()

			return err
		}
	}
}

// RecordRentalError records a service error by taxonomy kind
func RecordRentalError(kind string) {
	RentalErrorCounter.With(prometheus.Labels{"kind": kind}).Inc()
}

// RecordPropertyOperation records a catalog operation
func RecordPropertyOperation(operation string) {
	PropertyOperationCounter.With(prometheus.Labels{"operation": operation}).Inc()
}

// RecordBookingDecision records a booking status decision
func RecordBookingDecision(status string) {
	BookingDecisionCounter.With(prometheus.Labels{"status": status}).Inc()
}
