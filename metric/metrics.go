// Package metric exposes diff outcomes as Prometheus metrics. A Recorder
// owns its registry so a run can be written to a node_exporter textfile
// without touching the global default registry.
package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360studio/ontodiff/diff"
)

const namespace = "ontodiff"

// Recorder holds the metrics of diff runs.
type Recorder struct {
	registry *prometheus.Registry

	// Outcome of the latest run
	classes *prometheus.GaugeVec // By status
	edges   *prometheus.GaugeVec // By change (added/removed)
	triples *prometheus.GaugeVec // By snapshot (old/new)
	lastRun prometheus.Gauge

	// Totals across runs
	runs     *prometheus.CounterVec // By outcome (success/failure)
	duration prometheus.Histogram
}

// NewRecorder creates a recorder with a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),

		classes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "diff",
			Name:      "classes",
			Help:      "Number of classes per status in the latest diff",
		}, []string{"status"}),

		edges: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "diff",
			Name:      "edges",
			Help:      "Number of relation edges added or removed in the latest diff",
		}, []string{"change"}),

		triples: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "triples",
			Help:      "Number of distinct triples loaded per snapshot",
		}, []string{"snapshot"}),

		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "diff",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the latest successful diff",
		}),

		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "diff",
			Name:      "runs_total",
			Help:      "Total number of diff runs",
		}, []string{"outcome"}),

		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "diff",
			Name:      "duration_seconds",
			Help:      "Time to load, compare and report two snapshots",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	r.registry.MustRegister(r.classes, r.edges, r.triples, r.lastRun, r.runs, r.duration)
	return r
}

// Registry returns the registry backing r.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveSnapshots records the triple counts of the compared snapshots.
func (r *Recorder) ObserveSnapshots(oldTriples, newTriples int) {
	r.triples.WithLabelValues("old").Set(float64(oldTriples))
	r.triples.WithLabelValues("new").Set(float64(newTriples))
}

// ObserveRun records a successful diff that took elapsed.
func (r *Recorder) ObserveRun(result *diff.Result, elapsed time.Duration, at time.Time) {
	for status, n := range result.Counts() {
		r.classes.WithLabelValues(string(status)).Set(float64(n))
	}
	r.edges.WithLabelValues("added").Set(float64(result.AddedEdges.Len()))
	r.edges.WithLabelValues("removed").Set(float64(result.RemovedEdges.Len()))
	r.lastRun.Set(float64(at.Unix()))
	r.runs.WithLabelValues("success").Inc()
	r.duration.Observe(elapsed.Seconds())
}

// ObserveFailure counts a run that stopped with an error.
func (r *Recorder) ObserveFailure() {
	r.runs.WithLabelValues("failure").Inc()
}

// WriteTextfile writes every metric in the text exposition format to path,
// atomically replacing any previous file.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
