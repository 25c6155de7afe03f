package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(dbConnections, dbStatements, dbStatementLatencyMs, dbPoolStats)
}

var (
	dbConnections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_connections_total",
			Help: "Connections reserved and released by the data-access helper.",
		},
		[]string{"event"}, // 'opened', 'released', 'failed'
	)

	dbStatements = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_statements_total",
			Help: "Statements executed by operation and outcome.",
		},
		[]string{"op", "status"},
	)

	dbStatementLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_statement_latency_ms",
			Help:    "Statement latency distribution in milliseconds.",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
		},
		[]string{"op"},
	)

	dbPoolStats = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "db_pool_stats",
			Help: "Current state of the database connection pool.",
		},
		[]string{"state"}, // 'open', 'idle', 'in_use'
	)
)

func ConnectionOpened()   { dbConnections.WithLabelValues("opened").Inc() }
func ConnectionReleased() { dbConnections.WithLabelValues("released").Inc() }
func ConnectionFailed()   { dbConnections.WithLabelValues("failed").Inc() }

// ObserveStatement records one execute call. op is nonquery, scalar or query.
func ObserveStatement(op string, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	dbStatements.WithLabelValues(op, status).Inc()
	dbStatementLatencyMs.WithLabelValues(op).Observe(float64(elapsed) / float64(time.Millisecond))
}

func SetDBPoolStats(open, idle, inUse int) {
	dbPoolStats.WithLabelValues("open").Set(float64(open))
	dbPoolStats.WithLabelValues("idle").Set(float64(idle))
	dbPoolStats.WithLabelValues("in_use").Set(float64(inUse))
}

// Connections returns the current value of the connection counter for event.
func Connections(event string) float64 {
	return counterValue(dbConnections.WithLabelValues(event))
}

// Statements returns the current value of the statement counter for op and status.
func Statements(op, status string) float64 {
	return counterValue(dbStatements.WithLabelValues(op, status))
}
