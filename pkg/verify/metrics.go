package verify

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the Prometheus collectors updated by an Engine.
type Metrics struct {
	// outcomes counts outcomes. Labels: rule, type (success, warning, failure)
	outcomes *prometheus.CounterVec
	// ruleDuration measures how long each rule takes. Labels: rule
	ruleDuration *prometheus.HistogramVec
	// skipped counts rules skipped for lack of output. Labels: rule
	skipped *prometheus.CounterVec
	// runs counts runs. Labels: status (completed, aborted)
	runs *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "verify",
			Name:      "outcomes_total",
			Help:      "Verification outcomes by rule and type",
		}, []string{"rule", "type"}),
		ruleDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "verify",
			Name:      "rule_duration_seconds",
			Help:      "Time spent evaluating a rule",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"rule"}),
		skipped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "verify",
			Name:      "rules_skipped_total",
			Help:      "Rules skipped because no output data was available",
		}, []string{"rule"}),
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "verify",
			Name:      "runs_total",
			Help:      "Verification runs by status",
		}, []string{"status"}),
	}
}

func (m *Metrics) observeRule(id string, d time.Duration, results []Result) {
	if m == nil {
		return
	}
	m.ruleDuration.WithLabelValues(id).Observe(d.Seconds())
	for _, r := range results {
		m.outcomes.WithLabelValues(id, r.Type.String()).Inc()
	}
}

func (m *Metrics) observeSkip(id string) {
	if m == nil {
		return
	}
	m.skipped.WithLabelValues(id).Inc()
}

func (m *Metrics) observeRun(status string) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(status).Inc()
}
