package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	PeopleCreated      prometheus.Counter
	DutiesCreated      prometheus.Counter
	ValidationFailures *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		PeopleCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stargate_people_created_total",
			Help: "Total number of people created in the system",
		}),
		DutiesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stargate_duties_created_total",
			Help: "Total number of astronaut duty assignments recorded",
		}),
		ValidationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "stargate_validation_failures_total",
			Help: "Total number of rejected duty submissions by reason",
		}, []string{"reason"}),
	}
}

// IncrementPeopleCreated increments the people created counter by 1.
func (m *Metrics) IncrementPeopleCreated() {
	if m == nil {
		return
	}
	m.PeopleCreated.Inc()
}

// IncrementDutiesCreated increments the duties created counter by 1.
func (m *Metrics) IncrementDutiesCreated() {
	if m == nil {
		return
	}
	m.DutiesCreated.Inc()
}

// IncrementValidationFailure records a rejected submission by reason.
func (m *Metrics) IncrementValidationFailure(reason string) {
	if m == nil {
		return
	}
	m.ValidationFailures.WithLabelValues(reason).Inc()
}
