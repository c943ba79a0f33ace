// Package metrics records evaluation counters and latencies with Prometheus.
package metrics

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
)

const namespace = "intcalc"

// Recorder collects per-operation metrics on a private registry, so several
// recorders can coexist in one process (tests, embedded use).
type Recorder struct {
	registry    *prometheus.Registry
	evaluations *prometheus.CounterVec
	sentinels   *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	active      prometheus.Gauge
}

// NewRecorder creates a Recorder with the Go runtime collector registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Number of completed evaluations by operation.",
		}, []string{"operation"}),
		sentinels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sentinel_results_total",
			Help:      "Number of evaluations whose input took the sentinel path.",
		}, []string{"operation"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "evaluation_duration_seconds",
			Help:      "Wall time of evaluations by operation.",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 10, 10),
		}, []string{"operation"}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_evaluations",
			Help:      "Number of evaluations currently running.",
		}),
	}
	r.registry.MustRegister(r.evaluations, r.sentinels, r.duration, r.active, collectors.NewGoCollector())
	return r
}

// Begin marks the start of an evaluation.
func (r *Recorder) Begin() { r.active.Inc() }

// End marks the end of an evaluation started with Begin.
func (r *Recorder) End() { r.active.Dec() }

// Observe records one finished evaluation.
func (r *Recorder) Observe(operation string, valid bool, d time.Duration) {
	r.evaluations.WithLabelValues(operation).Inc()
	if !valid {
		r.sentinels.WithLabelValues(operation).Inc()
	}
	r.duration.WithLabelValues(operation).Observe(d.Seconds())
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler returns an http.Handler serving the text exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// WriteText writes every metric family in the Prometheus text format.
// With includeRuntime false the go_* families are skipped.
func (r *Recorder) WriteText(w io.Writer, includeRuntime bool) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if !includeRuntime && !isOwnFamily(mf.GetName()) {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("writing metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

func isOwnFamily(name string) bool {
	return len(name) > len(namespace) && name[:len(namespace)+1] == namespace+"_"
}
