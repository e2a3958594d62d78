// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package event

import "github.com/xmidt-org/waitables/clock"

// Option is a configuration option for an event
type Option func(*options)

type options struct {
	clock clock.Interface
}

// WithClock sets the time source used by WaitFor.  If nil, clock.System() is used.
func WithClock(c clock.Interface) Option {
	return func(o *options) {
		o.clock = clock.OrSystem(c)
	}
}

func newOptions(o []Option) options {
	opts := options{
		clock: clock.System(),
	}

	for _, f := range o {
		f(&opts)
	}

	return opts
}
