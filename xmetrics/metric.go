// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xmetrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	CounterType   = "counter"
	GaugeType     = "gauge"
	HistogramType = "histogram"
)

var (
	errMissingName = errors.New("a name is required for a metric")
)

// Module is a function type that returns prebuilt metrics.  countdown.Metrics and
// semaphore.Metrics are both Modules.
type Module func() []Metric

// Metric describes a single metric that will be preregistered.  This type loosely
// corresponds with Prometheus' Opts struct.
type Metric struct {
	// Name is the required name of this metric.
	Name string `mapstructure:"name"`

	// Type is the required type of metric.  This value must be one of the constants defined in this package.
	Type string `mapstructure:"type"`

	// Namespace is the namespace of this metric.  If unset, the enclosing Options' namespace is used.
	Namespace string `mapstructure:"namespace"`

	// Subsystem is the subsystem of this metric.  If unset, the enclosing Options' subsystem is used.
	Subsystem string `mapstructure:"subsystem"`

	// Help is the help string for this metric.  If not supplied, the metric's name is used.
	Help string `mapstructure:"help"`

	// ConstLabels are the Prometheus ConstLabels for this metric.  This field is optional.
	ConstLabels map[string]string `mapstructure:"constLabels"`

	// Buckets describes the observation buckets for a histogram, and is ignored for other types.
	Buckets []float64 `mapstructure:"buckets"`
}

// NewCollector creates a Prometheus metric from a Metric descriptor.  The name must not be empty.
// If not supplied in the metric, namespace, subsystem, and help all take on defaults.
func NewCollector(m Metric) (prometheus.Collector, error) {
	if len(m.Name) == 0 {
		return nil, errMissingName
	}

	var (
		namespace = m.Namespace
		subsystem = m.Subsystem
		help      = m.Help
	)

	if len(namespace) == 0 {
		namespace = DefaultNamespace
	}

	if len(subsystem) == 0 {
		subsystem = DefaultSubsystem
	}

	if len(help) == 0 {
		help = m.Name
	}

	switch m.Type {
	case CounterType:
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        m.Name,
			Help:        help,
			ConstLabels: prometheus.Labels(m.ConstLabels),
		}, nil), nil

	case GaugeType:
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        m.Name,
			Help:        help,
			ConstLabels: prometheus.Labels(m.ConstLabels),
		}, nil), nil

	case HistogramType:
		return prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        m.Name,
			Help:        help,
			Buckets:     m.Buckets,
			ConstLabels: prometheus.Labels(m.ConstLabels),
		}, nil), nil

	default:
		return nil, fmt.Errorf("unsupported metric type: %s", m.Type)
	}
}
