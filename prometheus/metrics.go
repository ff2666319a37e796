package prometheus

import (
	"club-service/pkg/config"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Authentication metrics
	LoginCounter         *prometheus.CounterVec
	StudentSignupCounter prometheus.Counter
	ActiveSessionsGauge  prometheus.Gauge

	// Authorization gate metrics
	GateDecisionCounter *prometheus.CounterVec

	// Domain metrics
	EventRegistrationCounter prometheus.Counter
	MembershipStatusCounter  *prometheus.CounterVec
	PointsAwardedCounter     prometheus.Counter

	// Database operation metrics
	DBOperationHistogram *prometheus.HistogramVec

	// Request metrics
	RequestDurationHistogram *prometheus.HistogramVec
	APIRequestCounter        *prometheus.CounterVec
	APIErrorCounter          *prometheus.CounterVec

	// Namespace prefix for metrics
	namespace string

	initOnce sync.Once
)

// InitMetrics initializes all Prometheus metrics. Safe to call more than once;
// registration with the default registry happens only on the first call.
func InitMetrics(cfg *config.Config) {
	initOnce.Do(func() {
		namespace = cfg.Metrics.Prefix

		// Authentication metrics
		LoginCounter = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "login_total",
				Help:      "Total number of login attempts",
			},
			[]string{"route", "outcome"},
		)

		StudentSignupCounter = promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "student_signup_total",
			Help:      "Total number of student account signups",
		})

		ActiveSessionsGauge = promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of currently active sessions",
		})

		// Authorization gate metrics
		GateDecisionCounter = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "gate_decisions_total",
				Help:      "Total number of authorization gate decisions",
			},
			[]string{"route_class", "reason"},
		)

		// Domain metrics
		EventRegistrationCounter = promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_registrations_total",
			Help:      "Total number of event registrations created",
		})

		MembershipStatusCounter = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "membership_status_total",
				Help:      "Total number of club membership status changes",
			},
			[]string{"status"},
		)

		PointsAwardedCounter = promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "student_points_awarded_total",
			Help:      "Total number of student point awards",
		})

		// Database operation metrics
		DBOperationHistogram = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "db_operation_duration_seconds",
				Help:      "Duration of database operations in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		)

		// Request metrics
		RequestDurationHistogram = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		)

		APIRequestCounter = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Total number of API requests",
			},
			[]string{"method", "path"},
		)

		APIErrorCounter = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_errors_total",
				Help:      "Total number of API errors",
			},
			[]string{"method", "path", "status"},
		)
	})
}

// MetricsMiddleware tracks request metrics
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Track API request count
			APIRequestCounter.With(prometheus.Labels{
				"method": c.Request().Method,
				"path":   c.Path(),
			}).Inc()

			// Process the request
			err := next(c)

			// Track request duration
			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			RequestDurationHistogram.With(prometheus.Labels{
				"method": c.Request().Method,
				"path":   c.Path(),
				"status": status,
			}).Observe(duration)

			// Track errors
			if c.Response().Status >= 400 {
				APIErrorCounter.With(prometheus.Labels{
					"method": c.Request().Method,
					"path":   c.Path(),
					"status": status,
				}).Inc()
			}

			return err
		}
	}
}

// HandlerFunc returns a HTTP handler for metrics endpoint
func HandlerFunc() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}

// TrackDBOperation returns a function that tracks database operation duration
func TrackDBOperation(operation string) func(time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationHistogram.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// RecordLogin increments the login counter for a login route and outcome
func RecordLogin(route, outcome string) {
	LoginCounter.With(prometheus.Labels{
		"route":   route,
		"outcome": outcome,
	}).Inc()
}

// RecordGateDecision increments the authorization gate decision counter
func RecordGateDecision(routeClass, reason string) {
	GateDecisionCounter.With(prometheus.Labels{
		"route_class": routeClass,
		"reason":      reason,
	}).Inc()
}
