// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package event

import (
	"sync"
	"time"
)

// ManualReset is a level-triggered event.  While set, every call to a wait method returns
// immediately.  The zero value is not usable; use NewManualReset.
type ManualReset struct {
	options

	// lock guards replacing signal, and is never held while waiting.
	lock sync.Mutex

	// signal is closed while the event is set
	signal chan struct{}
}

var _ Waiter = (*ManualReset)(nil)

// NewManualReset creates a level-triggered event in the given initial state.
func NewManualReset(signaled bool, o ...Option) *ManualReset {
	e := &ManualReset{
		options: newOptions(o),
		signal:  make(chan struct{}),
	}

	if signaled {
		close(e.signal)
	}

	return e
}

func (e *ManualReset) current() <-chan struct{} {
	e.lock.Lock()
	c := e.signal
	e.lock.Unlock()
	return c
}

// Set signals this event, releasing all current and future waiters until Reset is called.
// This method is idempotent.
func (e *ManualReset) Set() {
	e.lock.Lock()
	if !tryWait(e.signal) {
		close(e.signal)
	}

	e.lock.Unlock()
}

// Reset clears this event.  Goroutines that wait afterward will block until the next Set.
func (e *ManualReset) Reset() {
	e.lock.Lock()
	if tryWait(e.signal) {
		e.signal = make(chan struct{})
	}

	e.lock.Unlock()
}

// IsSet reports the current state of this event.  It is equivalent to TryWait.
func (e *ManualReset) IsSet() bool {
	return tryWait(e.current())
}

func (e *ManualReset) Wait() {
	<-e.current()
}

func (e *ManualReset) WaitFor(d time.Duration) bool {
	return waitFor(&e.options, e.current(), d)
}

func (e *ManualReset) TryWait() bool {
	return tryWait(e.current())
}
