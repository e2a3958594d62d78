// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"github.com/go-kit/kit/metrics/discard"
	"github.com/xmidt-org/sallust"
	"github.com/xmidt-org/waitables/clock"
	"github.com/xmidt-org/waitables/xmetrics"
	"go.uber.org/zap"
)

// Option represents a configurable option for a semaphore
type Option func(*Semaphore)

// WithResources establishes a metric that tracks the number of permits currently held.
// If a nil metric is supplied, resource counts are discarded.
func WithResources(a xmetrics.Adder) Option {
	return func(s *Semaphore) {
		if a != nil {
			s.resources = a
		} else {
			s.resources = discard.NewGauge()
		}
	}
}

// WithFailures establishes a metric that tracks how many attempts to acquire a permit failed,
// including TryWait calls that found nothing available.  If a nil counter is supplied, failure
// counts are discarded.
func WithFailures(a xmetrics.Adder) Option {
	return func(s *Semaphore) {
		if a != nil {
			s.failures = a
		} else {
			s.failures = discard.NewCounter()
		}
	}
}

// WithCeiling establishes a gauge that is set to the semaphore's ceiling whenever it changes.
// If a nil gauge is supplied, the ceiling is not reported.
func WithCeiling(g xmetrics.Setter) Option {
	return func(s *Semaphore) {
		if g != nil {
			s.ceiling = g
		} else {
			s.ceiling = discard.NewGauge()
		}
	}
}

// WithLogger sets the logger for a semaphore.  If nil, sallust.Default() is used.
func WithLogger(l *zap.Logger) Option {
	return func(s *Semaphore) {
		if l != nil {
			s.logger = l
		} else {
			s.logger = sallust.Default()
		}
	}
}

// WithClock sets the time source used by WaitFor.  If nil, clock.System() is used.
func WithClock(c clock.Interface) Option {
	return func(s *Semaphore) {
		s.clock = clock.OrSystem(c)
	}
}
