package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once         sync.Once
	assemblyTime prom.Histogram
	planActions  prom.Gauge
	planOutcome  *prom.CounterVec
	matchQueries prom.Counter
	diffChanges  *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.assemblyTime = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "actiongraph",
			Name:      "plan_assembly_duration_seconds",
			Help:      "Duration of plan assembly from configuration",
			Buckets:   prom.DefBuckets,
		})
		pr.planActions = prom.NewGauge(prom.GaugeOpts{
			Namespace: "actiongraph",
			Name:      "plan_actions",
			Help:      "Number of actions in the last assembled plan",
		})
		pr.planOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "actiongraph",
			Name:      "plan_outcomes_total",
			Help:      "Plan assembly outcomes by final status",
		}, []string{"outcome"})
		pr.matchQueries = prom.NewCounter(prom.CounterOpts{
			Namespace: "actiongraph",
			Name:      "match_queries_total",
			Help:      "Total asset-to-action match queries evaluated",
		})
		pr.diffChanges = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "actiongraph",
			Name:      "plan_diff_changes_total",
			Help:      "Plan diff results by change kind",
		}, []string{"change"})
		reg.MustRegister(pr.assemblyTime, pr.planActions, pr.planOutcome, pr.matchQueries, pr.diffChanges)
	})
	return pr
}

func (p *PrometheusRecorder) ObservePlanAssembly(d time.Duration, actionCount int) {
	if p == nil || p.assemblyTime == nil {
		return
	}
	p.assemblyTime.Observe(d.Seconds())
	p.planActions.Set(float64(actionCount))
}

func (p *PrometheusRecorder) IncPlanOutcome(outcome string) {
	if p == nil || p.planOutcome == nil {
		return
	}
	p.planOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) IncMatchQueries(n int) {
	if p == nil || p.matchQueries == nil {
		return
	}
	p.matchQueries.Add(float64(n))
}

func (p *PrometheusRecorder) ObserveDiff(added, removed, unchanged int) {
	if p == nil || p.diffChanges == nil {
		return
	}
	p.diffChanges.WithLabelValues("added").Add(float64(added))
	p.diffChanges.WithLabelValues("removed").Add(float64(removed))
	p.diffChanges.WithLabelValues("unchanged").Add(float64(unchanged))
}
