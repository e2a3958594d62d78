// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xmetricstest

import (
	"github.com/go-kit/kit/metrics"
)

// testingT is the expected behavior for a testing object.  *testing.T implements this interface.
type testingT interface {
	Errorf(string, ...interface{})
}

// valuer is implemented by the generic counters and gauges this package creates
type valuer interface {
	Value() float64
}

// Expectation is a metric expectation.  The metric will implement one of the go-kit metrics interfaces, e.g. Counter.
type Expectation func(t testingT, name string, metric interface{}) bool

// Value returns an expectation for a metric to be of a certain value.  The metric must be a counter or a gauge.
func Value(expected float64) Expectation {
	return func(t testingT, n string, m interface{}) bool {
		v, ok := m.(valuer)
		if !ok {
			t.Errorf("metric %s does not expose a value (i.e. is not a counter or gauge)", n)
			return false
		}

		if actual := v.Value(); actual != expected {
			t.Errorf("metric %s does not have the expected value %f.  actual value is %f", n, expected, actual)
			return false
		}

		return true
	}
}

// Minimum returns an expectation for a metric to be at least a certain value.
func Minimum(expected float64) Expectation {
	return func(t testingT, n string, m interface{}) bool {
		v, ok := m.(valuer)
		if !ok {
			t.Errorf("metric %s does not expose a value (i.e. is not a counter or gauge)", n)
			return false
		}

		if actual := v.Value(); actual < expected {
			t.Errorf("metric %s is smaller than the expected value %f.  actual value is %f", n, expected, actual)
			return false
		}

		return true
	}
}

// Counter is an expectation that a certain metric is a counter.
func Counter(t testingT, n string, m interface{}) bool {
	_, ok := m.(metrics.Counter)
	if !ok {
		t.Errorf("metric %s is not a counter", n)
	}

	return ok
}

// Gauge is an expectation that a certain metric is a gauge.
func Gauge(t testingT, n string, m interface{}) bool {
	_, ok := m.(metrics.Gauge)
	if !ok {
		t.Errorf("metric %s is not a gauge", n)
	}

	return ok
}
