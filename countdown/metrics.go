// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package countdown

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/provider"
	"github.com/xmidt-org/waitables/xmetrics"
)

// Names for our metrics
const (
	RemainingGauge  = "latch_remaining"
	OverTickCounter = "latch_over_tick_count"
)

// Metrics is an xmetrics.Module that describes the metrics a Latch can report.
// To realize them, use NewMeasures.
func Metrics() []xmetrics.Metric {
	return []xmetrics.Metric{
		{
			Name: RemainingGauge,
			Type: xmetrics.GaugeType,
			Help: "The amount of outstanding work across all instrumented latches",
		},
		{
			Name: OverTickCounter,
			Type: xmetrics.CounterType,
			Help: "The number of ticks rejected because a latch had already reached zero",
		},
	}
}

// Measures holds the realized latch metrics.
type Measures struct {
	Remaining metrics.Gauge
	OverTicks metrics.Counter
}

// NewMeasures realizes the metrics described by Metrics from a go-kit provider.
func NewMeasures(p provider.Provider) *Measures {
	return &Measures{
		Remaining: p.NewGauge(RemainingGauge),
		OverTicks: p.NewCounter(OverTickCounter),
	}
}

// Options returns the Latch options that report to these measures.
func (m *Measures) Options() []Option {
	return []Option{
		WithRemaining(m.Remaining),
		WithOverTicks(m.OverTicks),
	}
}
