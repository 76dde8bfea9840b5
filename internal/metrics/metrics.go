// Package metrics provides Prometheus instrumentation for complyd.
package metrics

import (
	"context"
	"database/sql"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "complyd",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, path pattern, and status code.",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency by method and path.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "complyd",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// AuditTrailWritesTotal counts audit trail writes by result.
	AuditTrailWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "complyd",
			Name:      "audit_trail_writes_total",
			Help:      "Total audit trail write attempts by result.",
		},
		[]string{"result"},
	)

	// GoroutineCount tracks the current goroutine count.
	GoroutineCount = prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: "complyd",
			Name:      "goroutines",
			Help:      "Current number of goroutines.",
		},
		func() float64 { return float64(runtime.NumGoroutine()) },
	)

	// DBConnectionsOpen tracks open database connections.
	DBConnectionsOpen = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "complyd",
			Name:      "db_connections_open",
			Help:      "Currently open database connections.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		AuditTrailWritesTotal,
		GoroutineCount,
		DBConnectionsOpen,
	)
}

// Middleware instruments HTTP requests. It uses the route pattern (not
// the raw URL) as the path label to keep cardinality bounded.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := statusLabel(c.Writer.Status())

		HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler returns the /metrics endpoint handler.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// WatchDBPool samples sql.DB pool stats until the context is cancelled.
func WatchDBPool(ctx context.Context, db *sql.DB, interval time.Duration) {
	if db == nil {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			DBConnectionsOpen.Set(float64(db.Stats().OpenConnections))
		}
	}
}

func statusLabel(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
