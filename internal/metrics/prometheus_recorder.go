package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg                *prom.Registry
	validationDuration prom.Histogram
	categories         prom.Gauge
	entries            prom.Gauge
	issues             *prom.CounterVec
	outcomes           *prom.CounterVec
}

// NewPrometheusRecorder constructs metrics and registers them on reg. A nil
// reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		validationDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "docnav",
			Name:      "validation_duration_seconds",
			Help:      "Duration of navigation build and validation",
			Buckets:   prom.ExponentialBuckets(0.001, 4, 8),
		}),
		categories: prom.NewGauge(prom.GaugeOpts{
			Namespace: "docnav",
			Name:      "sidebar_categories",
			Help:      "Number of declared sidebar categories",
		}),
		entries: prom.NewGauge(prom.GaugeOpts{
			Namespace: "docnav",
			Name:      "sidebar_entries",
			Help:      "Number of declared sidebar entries, duplicates included",
		}),
		issues: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docnav",
			Name:      "validation_issues_total",
			Help:      "Validation issues by rule and severity",
		}, []string{"rule", "severity"}),
		outcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docnav",
			Name:      "validation_outcomes_total",
			Help:      "Validation runs by outcome",
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.validationDuration, pr.categories, pr.entries, pr.issues, pr.outcomes)
	return pr
}

func (p *PrometheusRecorder) ObserveValidationDuration(d time.Duration) {
	p.validationDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetSidebarSize(categories, entries int) {
	p.categories.Set(float64(categories))
	p.entries.Set(float64(entries))
}

func (p *PrometheusRecorder) IncIssue(rule, severity string) {
	p.issues.WithLabelValues(rule, severity).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome string) {
	p.outcomes.WithLabelValues(outcome).Inc()
}

// Registry returns the registry metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

// WriteTextfile writes the current metrics in the text exposition format,
// replacing path atomically.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.reg)
}
