// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package event

import "time"

// AutoReset is an edge-triggered event.  A successful wait consumes the signal, so each Set
// releases at most one waiter.  The zero value is not usable; use NewAutoReset.
type AutoReset struct {
	options

	// signal holds at most one pending wake.  A send hands the wake directly to a blocked
	// receiver when there is one.
	signal chan struct{}
}

var _ Waiter = (*AutoReset)(nil)

// NewAutoReset creates an edge-triggered event.  If signaled is true, the first waiter
// passes through without blocking.
func NewAutoReset(signaled bool, o ...Option) *AutoReset {
	e := &AutoReset{
		options: newOptions(o),
		signal:  make(chan struct{}, 1),
	}

	if signaled {
		e.signal <- struct{}{}
	}

	return e
}

// Set wakes one blocked waiter or, if none is blocked, arms this event for the next waiter.
// Setting an already armed event has no effect.
func (e *AutoReset) Set() {
	select {
	case e.signal <- struct{}{}:
	default:
	}
}

// Reset discards any pending wake.
func (e *AutoReset) Reset() {
	select {
	case <-e.signal:
	default:
	}
}

func (e *AutoReset) Wait() {
	<-e.signal
}

func (e *AutoReset) WaitFor(d time.Duration) bool {
	return waitFor(&e.options, e.signal, d)
}

func (e *AutoReset) TryWait() bool {
	return tryWait(e.signal)
}
