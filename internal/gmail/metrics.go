package gmail

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts compilation and publishing outcomes. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	RulesCompiled    prometheus.Counter
	RulesFailed      *prometheus.CounterVec
	FiltersPublished prometheus.Counter
}

// NewMetrics creates the counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RulesCompiled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tb2gmail",
			Name:      "rules_compiled_total",
			Help:      "Rules compiled into Gmail filters.",
		}),
		RulesFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tb2gmail",
			Name:      "rules_failed_total",
			Help:      "Rules that could not become Gmail filters, by reason.",
		}, []string{"reason"}),
		FiltersPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tb2gmail",
			Name:      "filters_published_total",
			Help:      "Filters accepted by the publisher.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.RulesCompiled, m.RulesFailed, m.FiltersPublished)
	}
	return m
}

func (m *Metrics) ruleCompiled() {
	if m != nil {
		m.RulesCompiled.Inc()
	}
}

func (m *Metrics) ruleFailed(err *FilterNotCompilableError) {
	if m != nil {
		m.RulesFailed.WithLabelValues(err.reason()).Inc()
	}
}

func (m *Metrics) filterPublished() {
	if m != nil {
		m.FiltersPublished.Inc()
	}
}
