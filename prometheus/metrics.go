package prometheus

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors exported by the service
type Metrics struct {
	// HTTP request metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Status code category counter
	StatusCategoryTotal *prometheus.CounterVec

	// Database operation metrics
	DBOperationDuration *prometheus.HistogramVec

	// Entity operation metrics
	EntityOperationsTotal *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewMetrics creates the collectors with the given name prefix and registers
// them with reg. A nil reg selects the default Prometheus registry.
func NewMetrics(prefix string, reg prometheus.Registerer) *Metrics {
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	} else if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		StatusCategoryTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_status_category_total",
				Help: "Total number of responses by status category (2xx, 4xx, 5xx)",
			},
			[]string{"category", "method", "path"},
		),
		DBOperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_db_operation_duration_seconds",
				Help:    "Duration of database operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"entity", "operation"},
		),
		EntityOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_entity_operations_total",
				Help: "Total number of entity operations by outcome",
			},
			[]string{"entity", "operation", "outcome"},
		),
		gatherer: gatherer,
	}
}

// Middleware records request count, duration and status category
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			if err != nil && !c.Response().Committed {
				// echo writes the error response after this middleware returns
				status = http.StatusInternalServerError
				var he *echo.HTTPError
				if errors.As(err, &he) {
					status = he.Code
				}
			}
			method := c.Request().Method
			path := c.Path()
			statusStr := strconv.Itoa(status)

			m.HTTPRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
			m.HTTPRequestDuration.WithLabelValues(method, path, statusStr).Observe(time.Since(start).Seconds())
			if category := statusCategory(status); category != "" {
				m.StatusCategoryTotal.WithLabelValues(category, method, path).Inc()
			}

			return err
		}
	}
}

// TrackDBOperation returns a function that records the duration of a database operation
func (m *Metrics) TrackDBOperation(entity, operation string) func(startTime time.Time) {
	return func(startTime time.Time) {
		m.DBOperationDuration.WithLabelValues(entity, operation).Observe(time.Since(startTime).Seconds())
	}
}

// RecordOperation increments the counter for an entity operation
func (m *Metrics) RecordOperation(entity, operation, outcome string) {
	m.EntityOperationsTotal.WithLabelValues(entity, operation, outcome).Inc()
}

// Handler exposes the registered collectors
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func statusCategory(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500 && status < 600:
		return "5xx"
	}
	return ""
}
