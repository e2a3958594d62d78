// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package countdown

import (
	"github.com/go-kit/kit/metrics/discard"
	"github.com/xmidt-org/sallust"
	"github.com/xmidt-org/waitables/clock"
	"github.com/xmidt-org/waitables/xmetrics"
	"go.uber.org/zap"
)

// Option is a configuration option for a Latch
type Option func(*Latch)

// WithLogger sets the logger for a Latch.  If nil, sallust.Default() is used.
func WithLogger(l *zap.Logger) Option {
	return func(cl *Latch) {
		if l != nil {
			cl.logger = l
		} else {
			cl.logger = sallust.Default()
		}
	}
}

// WithClock sets the time source used by WaitFor.  If nil, clock.System() is used.
func WithClock(c clock.Interface) Option {
	return func(cl *Latch) {
		cl.clock = clock.OrSystem(c)
	}
}

// WithRemaining establishes a metric, normally a gauge, that tracks the count of the latch.
// If nil, the count is discarded.
func WithRemaining(a xmetrics.Adder) Option {
	return func(cl *Latch) {
		if a != nil {
			cl.remainingGauge = a
		} else {
			cl.remainingGauge = discard.NewGauge()
		}
	}
}

// WithOverTicks establishes a counter of rejected ticks.  If nil, over-ticks are not counted.
func WithOverTicks(a xmetrics.Adder) Option {
	return func(cl *Latch) {
		if a != nil {
			cl.overTicks = a
		} else {
			cl.overTicks = discard.NewCounter()
		}
	}
}
