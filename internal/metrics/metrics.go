package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeAnonymous = "anonymous"
	OutcomeFirstView = "first_view"
	OutcomeFresh     = "fresh"
	OutcomeStale     = "stale"
)

// DealMetrics holds the counters recorded while deal views are assembled.
// A nil *DealMetrics records nothing.
type DealMetrics struct {
	ViewsTotal              prometheus.Counter
	VisitOutcomesTotal      *prometheus.CounterVec
	CollaboratorErrorsTotal *prometheus.CounterVec
}

func NewDealMetrics(reg prometheus.Registerer) *DealMetrics {
	factory := promauto.With(reg)
	return &DealMetrics{
		ViewsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "deal_views_total",
				Help: "Number of deal views assembled",
			},
		),
		VisitOutcomesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deal_visit_outcomes_total",
				Help: "Freshness checks by outcome",
			},
			[]string{"outcome"},
		),
		CollaboratorErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deal_collaborator_errors_total",
				Help: "Failures of the store, media resolver and tag store",
			},
			[]string{"kind"},
		),
	}
}

func (m *DealMetrics) ObserveView() {
	if m == nil {
		return
	}
	m.ViewsTotal.Inc()
}

func (m *DealMetrics) ObserveVisit(outcome string) {
	if m == nil {
		return
	}
	m.VisitOutcomesTotal.WithLabelValues(outcome).Inc()
}

func (m *DealMetrics) ObserveError(kind string) {
	if m == nil {
		return
	}
	m.CollaboratorErrorsTotal.WithLabelValues(kind).Inc()
}
