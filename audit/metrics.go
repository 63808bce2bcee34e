package audit

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
)

// tracer names spans for batch checks.
var tracer = otel.Tracer("precedence.audit")

// Result labels for updatesTotal.
const (
	resultValid    = "valid"
	resultRepaired = "repaired"
	resultFailed   = "failed"
)

// metrics groups the collectors of one Checker. Checkers sharing a
// registerer share its collectors.
type metrics struct {
	// updatesTotal counts checked updates by outcome.
	// Labels: "valid", "repaired", "failed"
	updatesTotal *prometheus.CounterVec

	checkDuration prometheus.Histogram

	violations prometheus.Histogram

	// disagreements counts invalid updates where the comparator and
	// topological repairs differ.
	disagreements prometheus.Counter
}

// newMetrics creates the collectors and registers them on reg.
// A nil registerer leaves them unregistered.
func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		updatesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "precedence_updates_total",
			Help: "Checked updates by outcome",
		}, []string{"result"}),

		checkDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "precedence_check_duration_seconds",
			Help:    "Duration of one batch check",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1},
		}),

		violations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "precedence_update_violations",
			Help:    "Broken constraint instances per invalid update",
			Buckets: []float64{1, 2, 5, 10, 20, 50},
		}),

		disagreements: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "precedence_strategy_disagreements_total",
			Help: "Invalid updates where comparator and topological repairs differ",
		}),
	}
	if reg == nil {
		return m, nil
	}

	var err error
	if m.updatesTotal, err = register(reg, m.updatesTotal); err != nil {
		return nil, err
	}
	if m.checkDuration, err = register(reg, m.checkDuration); err != nil {
		return nil, err
	}
	if m.violations, err = register(reg, m.violations); err != nil {
		return nil, err
	}
	if m.disagreements, err = register(reg, m.disagreements); err != nil {
		return nil, err
	}

	return m, nil
}

// register adds c to reg. If an identical collector is already there it is
// returned instead, so a second Checker on the same registry reuses it.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}

	return c, fmt.Errorf("audit: register metrics: %w", err)
}
