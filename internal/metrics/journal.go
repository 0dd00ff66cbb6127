package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	journalFlushTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "journal",
		Name:      "flush_total",
		Help:      "Count of rejection journal flushes.",
	}, []string{"network", "status"})

	journalFlushDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "journal",
		Name:      "flush_duration_seconds",
		Help:      "Duration of flushing a rejection batch.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	journalFlushSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "journal",
		Name:      "flush_size",
		Help:      "Number of rejections written per flush.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"network"})
)

// Journal tracks metrics for the rejection journal.
type Journal struct {
	network string
}

// NewJournal constructs a Journal collector.
func NewJournal(network string) *Journal {
	return &Journal{network: labelOrUnknown(network)}
}

// ObserveFlush records a flush of size rejections.
func (m Journal) ObserveFlush(err error, size int, started time.Time) {
	status := statusOf(err)
	journalFlushTotal.WithLabelValues(m.network, status).Inc()
	journalFlushDuration.WithLabelValues(m.network, status).Observe(time.Since(started).Seconds())
	journalFlushSize.WithLabelValues(m.network).Observe(float64(size))
}
