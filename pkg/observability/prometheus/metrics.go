// Package prometheus exposes worker pool and logger activity as
// Prometheus metrics.
package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/whichxjy/acht/pkg/asynclog"
	"github.com/whichxjy/acht/pkg/threadpool"
)

var (
	// DefaultRegistry is the default Prometheus registry.
	DefaultRegistry = prometheus.NewRegistry()

	// DefaultRegisterer labels everything registered through it with the
	// service name.
	DefaultRegisterer = prometheus.WrapRegistererWith(
		prometheus.Labels{"service": "acht"}, DefaultRegistry)
)

// RegisterPool registers gauge and counter views over pool.Stats().
// Values are sampled at scrape time, so no update loop is needed. The
// pool must outlive the registerer.
func RegisterPool(registerer prometheus.Registerer, pool *threadpool.Pool) {
	if registerer == nil {
		registerer = DefaultRegisterer
	}

	promauto.With(registerer).NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "acht_pool_queued_tasks",
			Help: "Tasks currently waiting in the pool queue",
		},
		func() float64 { return float64(pool.Stats().QueuedTasks) },
	)
	promauto.With(registerer).NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "acht_pool_workers",
			Help: "Worker goroutines in the current pool cycle",
		},
		func() float64 { return float64(pool.Stats().Workers) },
	)
	promauto.With(registerer).NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "acht_pool_queue_capacity",
			Help: "Current task queue capacity bound",
		},
		func() float64 { return float64(pool.Stats().QueueCapacity) },
	)
	promauto.With(registerer).NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "acht_pool_queue_utilization_percent",
			Help: "Task queue utilization percentage",
		},
		func() float64 { return pool.Stats().QueueUtilization },
	)
	promauto.With(registerer).NewCounterFunc(
		prometheus.CounterOpts{
			Name: "acht_pool_completed_tasks_total",
			Help: "Tasks executed by pool workers",
		},
		func() float64 { return float64(pool.Stats().CompletedTasks) },
	)
	promauto.With(registerer).NewCounterFunc(
		prometheus.CounterOpts{
			Name: "acht_pool_rejected_tasks_total",
			Help: "Tasks dropped because the pool was shut down",
		},
		func() float64 { return float64(pool.Stats().RejectedTasks) },
	)
}

// LogRecorder implements asynclog.Recorder on Prometheus counters.
type LogRecorder struct {
	records *prometheus.CounterVec
	dropped prometheus.Counter
}

var _ asynclog.Recorder = (*LogRecorder)(nil)

// NewLogRecorder creates a LogRecorder registered with registerer.
func NewLogRecorder(registerer prometheus.Registerer) *LogRecorder {
	if registerer == nil {
		registerer = DefaultRegisterer
	}

	return &LogRecorder{
		records: promauto.With(registerer).NewCounterVec(
			prometheus.CounterOpts{
				Name: "acht_log_records_total",
				Help: "Log records accepted into the logger queue",
			},
			[]string{"level"},
		),
		dropped: promauto.With(registerer).NewCounter(
			prometheus.CounterOpts{
				Name: "acht_log_dropped_records_total",
				Help: "Log records lost to a stopped queue or unset file stream",
			},
		),
	}
}

// RecordWrite implements asynclog.Recorder.
func (r *LogRecorder) RecordWrite(level asynclog.Level) {
	r.records.WithLabelValues(level.String()).Inc()
}

// RecordDrop implements asynclog.Recorder.
func (r *LogRecorder) RecordDrop() {
	r.dropped.Inc()
}
