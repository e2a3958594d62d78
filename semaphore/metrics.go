// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/provider"
	"github.com/xmidt-org/waitables/xmetrics"
)

// Names for our metrics
const (
	ResourcesGauge = "semaphore_resources"
	FailureCounter = "semaphore_failure_count"
	CeilingGauge   = "semaphore_ceiling"
)

// Metrics is an xmetrics.Module that describes the metrics a Semaphore can report.
// To realize them, use NewMeasures.
func Metrics() []xmetrics.Metric {
	return []xmetrics.Metric{
		{
			Name: ResourcesGauge,
			Type: xmetrics.GaugeType,
			Help: "The number of semaphore permits currently held",
		},
		{
			Name: FailureCounter,
			Type: xmetrics.CounterType,
			Help: "The number of attempts to acquire a permit that timed out or found none available",
		},
		{
			Name: CeilingGauge,
			Type: xmetrics.GaugeType,
			Help: "The current ceiling of the semaphore",
		},
	}
}

// Measures holds the realized semaphore metrics.
type Measures struct {
	Resources metrics.Gauge
	Failures  metrics.Counter
	Ceiling   metrics.Gauge
}

// NewMeasures realizes the metrics described by Metrics from a go-kit provider.
func NewMeasures(p provider.Provider) *Measures {
	return &Measures{
		Resources: p.NewGauge(ResourcesGauge),
		Failures:  p.NewCounter(FailureCounter),
		Ceiling:   p.NewGauge(CeilingGauge),
	}
}

// Options returns the Semaphore options that report to these measures.
func (m *Measures) Options() []Option {
	return []Option{
		WithResources(m.Resources),
		WithFailures(m.Failures),
		WithCeiling(m.Ceiling),
	}
}
