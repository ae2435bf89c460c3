// Package metrics exports the progress of PageRank runs as Prometheus
// metrics.
package metrics

import (
	"github.com/linksrus/rankflow/pagerank"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/xerrors"
)

var _ pagerank.Observer = (*Collector)(nil)

// Collector implements pagerank.Observer by recording pass and run
// statistics to a set of Prometheus metrics.
type Collector struct {
	passes         prometheus.Counter
	lastDelta      prometheus.Gauge
	passDuration   prometheus.Histogram
	runs           *prometheus.CounterVec
	lastIterations prometheus.Gauge
}

// NewCollector creates the collector metrics and registers them with reg
// using the provided namespace.
func NewCollector(reg prometheus.Registerer, namespace string) (col *Collector, err error) {
	if reg == nil {
		return nil, xerrors.New("metrics: prometheus registerer not specified")
	}

	// promauto panics if a metric with the same name is already registered.
	defer func() {
		if r := recover(); r != nil {
			col, err = nil, xerrors.Errorf("metrics: unable to register collector: %v", r)
		}
	}()

	factory := promauto.With(reg)
	return &Collector{
		passes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pagerank_passes_total",
			Help:      "The total number of completed PageRank passes",
		}),
		lastDelta: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pagerank_last_delta",
			Help:      "The L1 delta of the most recent PageRank pass",
		}),
		passDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pagerank_pass_duration_seconds",
			Help:      "The time it took to execute a PageRank pass",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pagerank_runs_total",
			Help:      "The total number of completed PageRank runs by terminal state",
		}, []string{"state"}),
		lastIterations: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pagerank_last_iterations",
			Help:      "The number of passes executed by the most recent PageRank run",
		}),
	}, nil
}

// PassCompleted implements pagerank.Observer.
func (c *Collector) PassCompleted(p pagerank.Pass) {
	c.passes.Inc()
	c.lastDelta.Set(p.Delta)
	c.passDuration.Observe(p.Duration.Seconds())
}

// RunCompleted implements pagerank.Observer.
func (c *Collector) RunCompleted(res pagerank.Result) {
	c.runs.WithLabelValues(res.State.String()).Inc()
	c.lastIterations.Set(float64(res.Iterations))
}
