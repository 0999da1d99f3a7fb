package metrics

import "github.com/prometheus/client_golang/prometheus"

// Booking outcomes reported by the pipeline.
const (
	OutcomeBooked         = "booked"
	OutcomeNotPersisted   = "booked_not_persisted"
	OutcomeNoAvailability = "no_availability"
)

// PipelineMetrics exposes counters for the conversation booking pipeline.
// All observers are nil-safe so callers can run without a registry.
type PipelineMetrics struct {
	turnsTotal         prometheus.Counter
	pipelineRunsTotal  prometheus.Counter
	bookingsTotal      *prometheus.CounterVec
	notificationsTotal *prometheus.CounterVec
	turnErrorsTotal    *prometheus.CounterVec
}

func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	m := &PipelineMetrics{
		turnsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "citymed",
			Subsystem: "conversation",
			Name:      "turns_total",
			Help:      "Total user turns processed",
		}),
		pipelineRunsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "citymed",
			Subsystem: "conversation",
			Name:      "pipeline_runs_total",
			Help:      "Total booking pipeline executions",
		}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "citymed",
			Subsystem: "booking",
			Name:      "attempts_total",
			Help:      "Booking attempts by outcome",
		}, []string{"outcome"}),
		notificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "citymed",
			Subsystem: "notify",
			Name:      "sent_total",
			Help:      "Notifications fired by kind",
		}, []string{"kind"}),
		turnErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "citymed",
			Subsystem: "conversation",
			Name:      "turn_errors_total",
			Help:      "Turn failures by class",
		}, []string{"class"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.turnsTotal, m.pipelineRunsTotal, m.bookingsTotal, m.notificationsTotal, m.turnErrorsTotal)
	return m
}

func (m *PipelineMetrics) ObserveTurn() {
	if m == nil {
		return
	}
	m.turnsTotal.Inc()
}

func (m *PipelineMetrics) ObservePipelineRun() {
	if m == nil {
		return
	}
	m.pipelineRunsTotal.Inc()
}

func (m *PipelineMetrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(outcome).Inc()
}

func (m *PipelineMetrics) ObserveNotification(kind string) {
	if m == nil {
		return
	}
	m.notificationsTotal.WithLabelValues(kind).Inc()
}

func (m *PipelineMetrics) ObserveTurnError(class string) {
	if m == nil {
		return
	}
	m.turnErrorsTotal.WithLabelValues(class).Inc()
}
