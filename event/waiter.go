// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package event

import "time"

// Waiter is the waiting capability shared by events and the primitives built on them.
type Waiter interface {
	// Wait blocks until the condition holds.
	Wait()

	// WaitFor blocks for at most d, returning true if the condition held before the timeout.
	// A nonpositive duration is the same as TryWait.
	WaitFor(d time.Duration) bool

	// TryWait polls the condition without blocking.
	TryWait() bool
}

// waitFor is the common timed wait over a signal channel.  The fast path never allocates a timer.
func waitFor(o *options, c <-chan struct{}, d time.Duration) bool {
	select {
	case <-c:
		return true
	default:
		if d <= 0 {
			return false
		}
	}

	timer := o.clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-c:
		return true
	case <-timer.C():
		return false
	}
}

func tryWait(c <-chan struct{}) bool {
	select {
	case <-c:
		return true
	default:
		return false
	}
}
