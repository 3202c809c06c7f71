package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Strategy records strategy computations.
type Strategy struct {
	computed *prometheus.CounterVec
	duration *prometheus.HistogramVec
	coverage *prometheus.HistogramVec
	groups   *prometheus.HistogramVec
}

// NewStrategy creates the collectors and registers them with reg.
func NewStrategy(reg prometheus.Registerer) *Strategy {
	m := &Strategy{
		computed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "segmentation_strategies_total",
			Help: "Strategy computations, partitioned by mode and outcome.",
		}, []string{"mode", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "segmentation_strategy_duration_seconds",
			Help:    "Time spent computing a strategy, including the client read.",
			Buckets: prometheus.DefBuckets,
		}, []string{"mode"}),
		coverage: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "segmentation_strategy_coverage_ratio",
			Help:    "Fraction of the client pool reached by a computed strategy.",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
		}, []string{"mode"}),
		groups: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "segmentation_strategy_groups",
			Help:    "Number of segment groups selected per strategy.",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		}, []string{"mode"}),
	}
	reg.MustRegister(m.computed, m.duration, m.coverage, m.groups)
	return m
}

// ObserveStrategy records one computation. Coverage and group counts are
// only observed for computations that produced a result.
func (m *Strategy) ObserveStrategy(mode, outcome string, elapsed time.Duration, coverage float64, groups int) {
	m.computed.WithLabelValues(mode, outcome).Inc()
	m.duration.WithLabelValues(mode).Observe(elapsed.Seconds())
	if outcome == "invalid" || outcome == "unavailable" {
		return
	}
	m.coverage.WithLabelValues(mode).Observe(coverage)
	m.groups.WithLabelValues(mode).Observe(float64(groups))
}
