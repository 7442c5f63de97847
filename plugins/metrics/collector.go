// Package metrics exports store and host activity to Prometheus.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/bft-labs/builderstore/pkg/host"
	"github.com/bft-labs/builderstore/pkg/store"
)

const namespace = "builderstore"

// Collector turns host events into Prometheus metrics. It implements
// host.EventHandler.
type Collector struct {
	Registry *prometheus.Registry

	dispatches  *prometheus.CounterVec
	errors      *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	version     prometheus.Gauge
	subscribers prometheus.Gauge
	state       prometheus.Gauge
}

// NewCollector creates a collector with its own registry, which also
// carries the Go runtime and process collectors.
func NewCollector() *Collector {
	c := &Collector{
		Registry: prometheus.NewRegistry(),
		dispatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "dispatches_total",
				Help:      "Handled actions by kind and whether the state changed.",
			},
			[]string{"kind", "changed"},
		),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "errors_total",
				Help:      "Rejected transitions and failed subscribers by kind and cause.",
			},
			[]string{"kind", "cause"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "dispatch_duration_seconds",
				Help:      "Time spent reducing and notifying, by kind.",
				Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05, .1},
			},
			[]string{"kind"},
		),
		version: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "version",
			Help:      "Accepted transitions since the store was created.",
		}),
		subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "notified_subscribers",
			Help:      "Subscribers called by the last accepted transition.",
		}),
		state: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "host",
			Name:      "state",
			Help:      "Host lifecycle state (0 stopped, 1 starting, 2 running, 3 stopping, 4 crashed).",
		}),
	}
	c.Registry.MustRegister(
		c.dispatches, c.errors, c.duration, c.version, c.subscribers, c.state,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

func (c *Collector) OnDispatch(e store.DispatchEvent) {
	changed := "false"
	if e.Changed {
		changed = "true"
		c.version.Set(float64(e.Version))
		c.subscribers.Set(float64(e.Notified))
	}
	c.dispatches.WithLabelValues(e.Kind, changed).Inc()
	c.duration.WithLabelValues(e.Kind).Observe(e.Duration.Seconds())
}

func (c *Collector) OnError(err *store.DispatchError) {
	c.errors.WithLabelValues(err.Kind, cause(err)).Inc()
}

func (c *Collector) OnStateChange(e host.StateChangeEvent) {
	c.state.Set(float64(e.Current))
}

func cause(err error) string {
	switch {
	case errors.Is(err, store.ErrReducerPanic):
		return "reducer_panic"
	case errors.Is(err, store.ErrSubscriberPanic):
		return "subscriber_panic"
	case errors.Is(err, store.ErrClosed):
		return "closed"
	default:
		return "other"
	}
}

var _ host.EventHandler = (*Collector)(nil)
