// Package metrics exports navigator activity as Prometheus metrics.
package metrics

import (
	"errors"

	"github.com/BrandonKowalski/navigator/pkg/navigator"
	"github.com/BrandonKowalski/navigator/pkg/navigator/constants"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector counts navigation operations and times completed transitions.
type Collector struct {
	pushes      prometheus.Counter
	pops        prometheus.Counter
	canceled    prometheus.Counter
	errors      *prometheus.CounterVec
	transitions *prometheus.HistogramVec
}

// NewCollector creates the navigator metrics and registers them with reg.
// A nil reg uses the default Prometheus registerer.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		pushes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "navigator_push_total",
			Help: "Total number of completed page pushes",
		}),
		pops: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "navigator_pop_total",
			Help: "Total number of completed page pops",
		}),
		canceled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "navigator_pop_canceled_total",
			Help: "Total number of pops canceled by prePop handlers",
		}),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "navigator_errors_total",
				Help: "Total number of failed navigation operations",
			},
			[]string{"op"},
		),
		transitions: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "navigator_transition_seconds",
				Help:    "Time from a navigation request to the end of its transition",
				Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"op"},
		),
	}

	for _, m := range []prometheus.Collector{c.pushes, c.pops, c.canceled, c.errors, c.transitions} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Observe subscribes the collector to nav's events. The returned function
// unsubscribes it.
func (c *Collector) Observe(nav *navigator.Navigator) (detach func()) {
	offs := []func(){
		nav.OnPostPush(func(e *navigator.PushEvent) {
			c.pushes.Inc()
			c.transitions.WithLabelValues("push").Observe(e.CompletedAt.Sub(e.RequestedAt).Seconds())
		}),
		nav.OnPostPop(func(e *navigator.PopEvent) {
			c.pops.Inc()
			c.transitions.WithLabelValues("pop").Observe(e.CompletedAt.Sub(e.RequestedAt).Seconds())
		}),
		nav.On(constants.EventPopCanceled, func(any) {
			c.canceled.Inc()
		}),
		nav.OnError(func(e *navigator.ErrorEvent) {
			c.errors.WithLabelValues(operation(e.Err)).Inc()
		}),
	}

	return func() {
		for _, off := range offs {
			off()
		}
	}
}

func operation(err error) string {
	var navErr *navigator.NavigationError
	if errors.As(err, &navErr) && navErr.Op != "" {
		return navErr.Op
	}
	return "unknown"
}
