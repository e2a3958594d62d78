// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Interface is the time source used by timed waits.  Production code uses System(), while
// tests substitute clocktest.Mock to control when a wait's deadline fires.
type Interface interface {
	// Now returns the current time.  Bounded waits use this to track a single deadline
	// across repeated wakeups.
	Now() time.Time

	// Sleep pauses the calling goroutine for at least d.
	Sleep(d time.Duration)

	// NewTimer creates a Timer that fires once after d.
	NewTimer(d time.Duration) Timer
}

type systemClock struct{}

func (sc systemClock) Now() time.Time {
	return time.Now()
}

func (sc systemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

func (sc systemClock) NewTimer(d time.Duration) Timer {
	return systemTimer{time.NewTimer(d)}
}

// System returns a clock backed by the time package
func System() Interface {
	return systemClock{}
}

// OrSystem returns c, or System() if c is nil.  Constructors that accept an optional
// clock use this to fill in the default.
func OrSystem(c Interface) Interface {
	if c != nil {
		return c
	}

	return System()
}
