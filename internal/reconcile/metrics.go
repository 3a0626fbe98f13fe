package reconcile

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus instruments a Reconciler updates while
// healing. Construct one per registry, not per Reconciler, if several
// Reconcilers (e.g. one per symbol) share a process.
type Metrics struct {
	healedMissing  prometheus.Counter
	healedMismatch prometheus.Counter
	drained        prometheus.Counter
	persistent     prometheus.Gauge
	rowsReconciled prometheus.Counter
}

// NewMetrics constructs and registers a Metrics against reg. Pass
// prometheus.NewRegistry() in tests to avoid colliding with the
// default global registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		healedMissing: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lob",
			Subsystem: "reconcile",
			Name:      "healed_missing_total",
			Help:      "Synthetic orders injected to fill a level the book had zero volume at.",
		}),
		healedMismatch: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lob",
			Subsystem: "reconcile",
			Name:      "healed_mismatch_total",
			Help:      "Synthetic orders injected to correct a non-zero but wrong level volume.",
		}),
		drained: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lob",
			Subsystem: "reconcile",
			Name:      "drained_total",
			Help:      "Anonymous-volume drains applied when truth size was below the book's size.",
		}),
		persistent: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lob",
			Subsystem: "reconcile",
			Name:      "persistent_logic_errors",
			Help:      "Running count of non-zero level mismatches observed against the truth stream.",
		}),
		rowsReconciled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lob",
			Subsystem: "reconcile",
			Name:      "rows_reconciled_total",
			Help:      "Total snapshot rows checked against the book.",
		}),
	}
	reg.MustRegister(
		m.healedMissing,
		m.healedMismatch,
		m.drained,
		m.persistent,
		m.rowsReconciled,
	)
	return m
}
