// Package metrics holds the Prometheus collectors for knight runs and
// document fetches.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds the registered collectors.
type Metrics struct {
	RunsTotal         *prometheus.CounterVec
	CommandsTotal     *prometheus.CounterVec
	BlockedMovesTotal prometheus.Counter
	FetchDuration     *prometheus.HistogramVec
	FetchErrorsTotal  *prometheus.CounterVec
}

// New creates and registers the collectors. Registration happens once per
// process; later calls return the same instance.
//
// Metrics:
//   - knight_runs_total{status} - completed runs by outcome status
//   - knight_commands_total{kind} - consumed instructions by kind
//   - knight_blocked_moves_total - MOVE instructions cut short by an obstacle
//   - knight_fetch_duration_seconds{document} - source fetch latency
//   - knight_fetch_errors_total{document} - failed source fetches
func New() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			RunsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "knight_runs_total",
					Help: "Total number of completed knight runs",
				},
				[]string{"status"},
			),
			CommandsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "knight_commands_total",
					Help: "Total number of instructions consumed",
				},
				[]string{"kind"}, // "start", "rotate", "move" or "ignored"
			),
			BlockedMovesTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "knight_blocked_moves_total",
					Help: "Total number of moves stopped early by an obstacle",
				},
			),
			FetchDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "knight_fetch_duration_seconds",
					Help:    "Duration of source document fetches in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"document"}, // "board" or "commands"
			),
			FetchErrorsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "knight_fetch_errors_total",
					Help: "Total number of failed source document fetches",
				},
				[]string{"document"},
			),
		}
	})
	return globalMetrics
}

// RecordRun counts a completed run
func (m *Metrics) RecordRun(status string) {
	if m == nil {
		return
	}
	m.RunsTotal.WithLabelValues(status).Inc()
}

// RecordCommand counts a consumed instruction and, for moves, whether it was blocked
func (m *Metrics) RecordCommand(kind string, blocked bool) {
	if m == nil {
		return
	}
	m.CommandsTotal.WithLabelValues(kind).Inc()
	if blocked {
		m.BlockedMovesTotal.Inc()
	}
}

// RecordFetch observes a fetch of the named document
func (m *Metrics) RecordFetch(document string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.FetchDuration.WithLabelValues(document).Observe(elapsed.Seconds())
	if err != nil {
		m.FetchErrorsTotal.WithLabelValues(document).Inc()
	}
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
