package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"backoffice-service/pkg/config"
)

// Counter metrics
var (
	// Entity operation counter
	EntityOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_entity_operations_total",
			Help: "Total number of entity operations",
		},
		[]string{"entity", "operation"}, // entity: user/department/order/person, operation: create/read/update/delete/list
	)

	// Relationship operation counter
	RelationshipOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_relationship_operations_total",
			Help: "Total number of attach/detach operations on the user-department relation",
		},
		[]string{"operation"},
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	// Error counters by taxonomy kind
	ErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_errors_total",
			Help: "Total number of domain errors by kind",
		},
		[]string{"kind"}, // kind: duplicate_key, invalid_range, missing_field, not_found, not_owned, unknown_variant, conflict
	)

	// Demo run counter
	DemoRunCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_demo_runs_total",
			Help: "Total number of demo scenario runs",
		},
		[]string{"scenario"},
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backoffice_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backoffice_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // operation can be "query", "insert", "update", "delete"
	)
)

// Gauge metrics
var (
	// System info
	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "backoffice_info",
			Help: "Information about the backoffice service",
		},
		[]string{"version", "environment"},
	)

	// Entity row counts, refreshed opportunistically by handlers
	EntityCountGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "backoffice_entity_rows",
			Help: "Number of stored rows per entity",
		},
		[]string{"entity"},
	)
)

func init() {
	// Register counters
	prometheus.MustRegister(EntityOperationCounter)
	prometheus.MustRegister(RelationshipOperationCounter)
	prometheus.MustRegister(HTTPRequestCounter)
	prometheus.MustRegister(ErrorCounter)
	prometheus.MustRegister(DemoRunCounter)

	// Register histograms
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DBOperationDuration)

	// Register gauges
	prometheus.MustRegister(InfoGauge)
	prometheus.MustRegister(EntityCountGauge)
}

// InitMetrics sets the static service info from the configuration.
func InitMetrics(cfg *config.Config) {
	InfoGauge.With(prometheus.Labels{
		"version":     "1.0.0",
		"environment": cfg.Server.Env,
	}).Set(1)
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

			// Record metrics
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

// RecordEntityOperation records one operation against an entity kind.
func RecordEntityOperation(entity, operation string) {
	EntityOperationCounter.With(prometheus.Labels{
		"entity":    entity,
		"operation": operation,
	}).Inc()
}

// RecordRelationshipOperation records an attach or detach.
func RecordRelationshipOperation(operation string) {
	RelationshipOperationCounter.With(prometheus.Labels{"operation": operation}).Inc()
}

// RecordError records a domain error by taxonomy kind.
func RecordError(kind string) {
	ErrorCounter.With(prometheus.Labels{"kind": kind}).Inc()
}

// RecordDemoRun records one demo scenario run.
func RecordDemoRun(scenario string) {
	DemoRunCounter.With(prometheus.Labels{"scenario": scenario}).Inc()
}

// UpdateEntityCount updates the stored row gauge for an entity kind.
func UpdateEntityCount(entity string, count int64) {
	EntityCountGauge.With(prometheus.Labels{"entity": entity}).Set(float64(count))
}
