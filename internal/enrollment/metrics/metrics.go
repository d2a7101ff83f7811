package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the enrollment module.
// Tracks lifecycle transitions, ledger movements and operation durations.
type Metrics struct {
	Transitions       *prometheus.CounterVec
	LedgerOperations  *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	ArchivedUsers     prometheus.Counter
}

// New creates the enrollment metrics on reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Transitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "trainhub_enrollment_transitions_total",
			Help: "Lifecycle transitions by entity, action and outcome",
		}, []string{"entity", "action", "outcome"}),
		LedgerOperations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "trainhub_quota_ledger_operations_total",
			Help: "Quota reservations and releases by priority",
		}, []string{"op", "priority"}),
		OperationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trainhub_enrollment_operation_duration_seconds",
			Help:    "Duration of enrollment service operations including the transaction",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
		ArchivedUsers: f.NewCounter(prometheus.CounterOpts{
			Name: "trainhub_users_archived_total",
			Help: "Total number of users archived",
		}),
	}
}

// ObserveTransition records one transition attempt. outcome is "ok" or an error code.
func (m *Metrics) ObserveTransition(entity, action, outcome string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(entity, action, outcome).Inc()
}

// ObserveLedger records a ledger reservation or release.
func (m *Metrics) ObserveLedger(op, priority string) {
	if m == nil {
		return
	}
	m.LedgerOperations.WithLabelValues(op, priority).Inc()
}

// ObserveOperation records the duration of an operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveOperation(operation string, start time.Time) {
	if m == nil {
		return
	}
	m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementArchivedUsers() {
	if m == nil {
		return
	}
	m.ArchivedUsers.Inc()
}
