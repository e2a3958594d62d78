// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package xmetricstest supplies a go-kit provider.Provider for tests that records values with
go-kit's generic metrics and can assert on them by name.
*/
package xmetricstest

import (
	"fmt"
	"sync"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/generic"
	"github.com/go-kit/kit/metrics/provider"
	"github.com/xmidt-org/waitables/xmetrics"
)

// Provider is a testing implementation of go-kit's provider.Provider.  Additionally, it provides
// assertion and expectation functionality.
type Provider interface {
	provider.Provider

	// Expect associates expectations with a metric, to be verified later by AssertExpectations.
	// This method uses a Fluent Builder style:
	//
	//    provider.Expect("counter")(xmetricstest.Counter, xmetricstest.Value(1.0)).
	//        Expect("gauge")(xmetricstest.Gauge)
	Expect(string) func(...Expectation) Provider

	// Assert executes expectations against a metric immediately.
	Assert(testingT, string) func(...Expectation) bool

	// AssertExpectations verifies all expectations.  It returns true if and only if all
	// expectations pass or if there were no expectations set.
	AssertExpectations(testingT) bool
}

// NewProvider returns a testing Provider with every metric from the given modules already
// created.  Metrics that are not described by a module are created on demand, as with
// xmetrics.NewRegistry.  An unsupported metric type results in a panic.
func NewProvider(m ...xmetrics.Module) Provider {
	tp := &testProvider{
		metrics:      make(map[string]interface{}),
		expectations: make(map[string][]Expectation),
	}

	for _, module := range m {
		for _, metric := range module() {
			switch metric.Type {
			case xmetrics.CounterType:
				tp.metrics[metric.Name] = generic.NewCounter(metric.Name)
			case xmetrics.GaugeType:
				tp.metrics[metric.Name] = generic.NewGauge(metric.Name)
			case xmetrics.HistogramType:
				tp.metrics[metric.Name] = generic.NewHistogram(metric.Name, len(metric.Buckets))
			default:
				panic(fmt.Errorf("unsupported metric type %q for %s", metric.Type, metric.Name))
			}
		}
	}

	return tp
}

type testProvider struct {
	lock         sync.Mutex
	metrics      map[string]interface{}
	expectations map[string][]Expectation
}

func (tp *testProvider) NewCounter(name string) metrics.Counter {
	defer tp.lock.Unlock()
	tp.lock.Lock()

	if e, ok := tp.metrics[name]; ok {
		if c, ok := e.(metrics.Counter); ok {
			return c
		}

		panic(fmt.Errorf("metric %s is not a counter", name))
	}

	c := generic.NewCounter(name)
	tp.metrics[name] = c
	return c
}

func (tp *testProvider) NewGauge(name string) metrics.Gauge {
	defer tp.lock.Unlock()
	tp.lock.Lock()

	if e, ok := tp.metrics[name]; ok {
		if g, ok := e.(metrics.Gauge); ok {
			return g
		}

		panic(fmt.Errorf("existing metric %s is not a gauge", name))
	}

	g := generic.NewGauge(name)
	tp.metrics[name] = g
	return g
}

func (tp *testProvider) NewHistogram(name string, buckets int) metrics.Histogram {
	defer tp.lock.Unlock()
	tp.lock.Lock()

	if e, ok := tp.metrics[name]; ok {
		if h, ok := e.(metrics.Histogram); ok {
			return h
		}

		panic(fmt.Errorf("metric %s is not a histogram", name))
	}

	h := generic.NewHistogram(name, buckets)
	tp.metrics[name] = h
	return h
}

func (tp *testProvider) Stop() {
}

func (tp *testProvider) Expect(name string) func(...Expectation) Provider {
	return func(e ...Expectation) Provider {
		defer tp.lock.Unlock()
		tp.lock.Lock()

		tp.expectations[name] = append(tp.expectations[name], e...)
		return tp
	}
}

func (tp *testProvider) check(t testingT, name string, e []Expectation) bool {
	metric, ok := tp.metrics[name]
	if !ok {
		t.Errorf("metric %s does not exist", name)
		return false
	}

	result := true
	for _, f := range e {
		result = f(t, name, metric) && result
	}

	return result
}

func (tp *testProvider) Assert(t testingT, name string) func(...Expectation) bool {
	return func(e ...Expectation) bool {
		defer tp.lock.Unlock()
		tp.lock.Lock()

		return tp.check(t, name, e)
	}
}

func (tp *testProvider) AssertExpectations(t testingT) bool {
	defer tp.lock.Unlock()
	tp.lock.Lock()

	result := true
	for name, e := range tp.expectations {
		result = tp.check(t, name, e) && result
	}

	return result
}
