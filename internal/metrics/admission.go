package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	admissionChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "admission",
		Name:      "checks_total",
		Help:      "Count of transaction admission checks by outcome and reject reason.",
	}, []string{"network", "outcome", "reason"})

	admissionCheckDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "admission",
		Name:      "check_duration_seconds",
		Help:      "Duration of a single transaction admission check.",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"network", "outcome"})

	admissionTaprootInputsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "admission",
		Name:      "taproot_inputs_total",
		Help:      "Count of Taproot inputs inspected by spend path and verdict.",
	}, []string{"network", "path", "verdict"})
)

// Outcome labels for admission checks.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Admission tracks metrics for the transaction admission service.
type Admission struct {
	network string
}

// NewAdmission constructs an Admission collector.
func NewAdmission(network string) *Admission {
	return &Admission{network: labelOrUnknown(network)}
}

// ObserveCheck records the outcome of one admission check. reason is empty for accepted
// transactions and infrastructure errors.
func (m Admission) ObserveCheck(outcome, reason string, started time.Time) {
	if reason == "" {
		reason = "none"
	}
	admissionChecksTotal.WithLabelValues(m.network, outcome, reason).Inc()
	admissionCheckDuration.WithLabelValues(m.network, outcome).Observe(time.Since(started).Seconds())
}

// ObserveTaprootInput records the verdict for one Taproot input.
func (m Admission) ObserveTaprootInput(path, verdict string) {
	admissionTaprootInputsTotal.WithLabelValues(m.network, path, verdict).Inc()
}
