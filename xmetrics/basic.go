// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xmetrics

// Adder represents a metric to which deltas can be added.  Go-kit's metrics.Counter and metrics.Gauge
// both implement this interface, so a primitive can be handed either one.
type Adder interface {
	Add(float64)
}

// Setter represents a metric that receives absolute values, e.g. a gauge tracking a ceiling.
type Setter interface {
	Set(float64)
}
