// Package metrics exports table events as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/theflywheel/slowhash"
)

// Collector is a slowhash.Observer that records resizes and probe lengths.
type Collector struct {
	resizes      *prometheus.CounterVec
	droppedTombs prometheus.Counter
	probes       *prometheus.HistogramVec
	capacity     prometheus.Gauge
}

var _ slowhash.Observer = (*Collector)(nil)

// NewCollector creates a Collector and registers it with reg. A nil reg
// leaves the metrics unregistered.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		resizes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "slowhash",
			Name:      "resizes_total",
			Help:      "Number of table rebuilds by direction.",
		}, []string{"direction"}),
		droppedTombs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "slowhash",
			Name:      "dropped_tombstones_total",
			Help:      "Tombstones reclaimed by rebuilds.",
		}),
		probes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "slowhash",
			Name:      "probe_attempts",
			Help:      "Buckets inspected per operation.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		}, []string{"op"}),
		capacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "slowhash",
			Name:      "capacity",
			Help:      "Bucket count after the last rebuild.",
		}),
	}
	if reg != nil {
		reg.MustRegister(c.resizes, c.droppedTombs, c.probes, c.capacity)
	}
	return c
}

func (c *Collector) ObserveResize(ev slowhash.ResizeEvent) {
	c.resizes.WithLabelValues(ev.Direction.String()).Inc()
	c.droppedTombs.Add(float64(ev.DroppedTombs))
	c.capacity.Set(float64(ev.NewCapacity))
}

func (c *Collector) ObserveProbe(op slowhash.Op, attempts int) {
	c.probes.WithLabelValues(op.String()).Observe(float64(attempts))
}
