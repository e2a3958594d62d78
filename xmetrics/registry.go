// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xmetrics

import (
	"fmt"
	"sync"

	"github.com/go-kit/kit/metrics"
	gokitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/go-kit/kit/metrics/provider"
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is a Prometheus registry and a go-kit provider.Provider all in one.
//
// Metrics described by Options or by modules are preregistered, and the Provider methods return
// go-kit wrappers for them.  Names that were not preregistered are created ad hoc on first use and
// cached, so asking for the same name twice yields the same underlying metric.
type Registry interface {
	provider.Provider
	prometheus.Gatherer
	prometheus.Registerer
}

type registry struct {
	*prometheus.Registry

	namespace string
	subsystem string

	lock  sync.Mutex
	cache map[string]prometheus.Collector
}

// collector returns the cached collector with the given name, creating and registering
// an ad hoc one of the given type if necessary.
func (r *registry) collector(name, metricType string) prometheus.Collector {
	r.lock.Lock()
	defer r.lock.Unlock()

	if existing, ok := r.cache[name]; ok {
		return existing
	}

	c, err := NewCollector(Metric{
		Name:      name,
		Type:      metricType,
		Namespace: r.namespace,
		Subsystem: r.subsystem,
	})

	if err != nil {
		panic(err)
	}

	if err := r.Registry.Register(c); err != nil {
		panic(err)
	}

	r.cache[name] = c
	return c
}

func (r *registry) NewCounter(name string) metrics.Counter {
	vec, ok := r.collector(name, CounterType).(*prometheus.CounterVec)
	if !ok {
		panic(fmt.Errorf("the metric %s is not a counter", name))
	}

	return gokitprometheus.NewCounter(vec)
}

func (r *registry) NewGauge(name string) metrics.Gauge {
	vec, ok := r.collector(name, GaugeType).(*prometheus.GaugeVec)
	if !ok {
		panic(fmt.Errorf("the metric %s is not a gauge", name))
	}

	return gokitprometheus.NewGauge(vec)
}

func (r *registry) NewHistogram(name string, _ int) metrics.Histogram {
	vec, ok := r.collector(name, HistogramType).(*prometheus.HistogramVec)
	if !ok {
		panic(fmt.Errorf("the metric %s is not a histogram", name))
	}

	return gokitprometheus.NewHistogram(vec)
}

func (r *registry) Stop() {
}

// NewRegistry creates a Registry from the given Options and modules.  The Options may be nil.
// Every metric from o.Metrics and from each module is preregistered.  Metrics with duplicate
// names result in an error.
func NewRegistry(o *Options, modules ...Module) (Registry, error) {
	r := &registry{
		Registry:  o.registry(),
		namespace: o.namespace(),
		subsystem: o.subsystem(),
		cache:     make(map[string]prometheus.Collector),
	}

	all := append([]Metric{}, o.metrics()...)
	for _, m := range modules {
		all = append(all, m()...)
	}

	for _, m := range all {
		if len(m.Namespace) == 0 {
			m.Namespace = r.namespace
		}

		if len(m.Subsystem) == 0 {
			m.Subsystem = r.subsystem
		}

		if _, ok := r.cache[m.Name]; ok {
			return nil, fmt.Errorf("duplicate metric with name: %s", m.Name)
		}

		c, err := NewCollector(m)
		if err != nil {
			return nil, err
		}

		if err := r.Registry.Register(c); err != nil {
			return nil, fmt.Errorf("error while preregistering metric %s: %w", m.Name, err)
		}

		r.cache[m.Name] = c
	}

	return r, nil
}
