// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-kit/kit/metrics/discard"
	"github.com/xmidt-org/sallust"
	"github.com/xmidt-org/waitables/clock"
	"github.com/xmidt-org/waitables/event"
	"github.com/xmidt-org/waitables/xmetrics"
	"go.uber.org/zap"
)

var (
	// ErrTimeout is returned when a permit could not be acquired within the timeout.  TryWait
	// returns this error immediately when no permit is available.
	ErrTimeout = errors.New("the semaphore could not be acquired within the timeout")

	// ErrInvalidCount is the panic value when a Semaphore is constructed with a negative count or
	// an initial count above its maximum.  It is also returned by TryRelease for a negative count.
	ErrInvalidCount = errors.New("invalid semaphore count")

	// ErrCeilingExceeded indicates that growing the ceiling would take it past the semaphore's maximum.
	ErrCeilingExceeded = errors.New("the semaphore ceiling cannot exceed its maximum")

	// ErrInsufficientPermits indicates that the ceiling cannot be shrunk by more than the
	// number of permits that are currently free.
	ErrInsufficientPermits = errors.New("not enough free permits to shrink the semaphore ceiling")
)

// policy is how an acquire behaves when no permit is free
type policy int

const (
	pollOnly policy = iota
	bounded
	infinite
)

// Semaphore is a counting semaphore with an adjustable ceiling.  A Semaphore is safe for
// concurrent use and may be stored in a package-level variable.  The zero value is not usable;
// use New.
type Semaphore struct {
	max       int64
	current   atomic.Int64
	available atomic.Int64

	// wake is set when available leaves zero, and again by each acquirer that leaves permits behind
	wake *event.AutoReset

	clock     clock.Interface
	logger    *zap.Logger
	resources xmetrics.Adder
	failures  xmetrics.Adder
	ceiling   xmetrics.Setter
}

// New constructs a Semaphore with initial permits available and an absolute maximum ceiling of max.
// A negative count, or an initial count greater than max, results in a panic with ErrInvalidCount.
func New(initial, max int, o ...Option) *Semaphore {
	if initial < 0 || max < 0 || initial > max {
		panic(fmt.Errorf("%w: initial=%d, max=%d", ErrInvalidCount, initial, max))
	}

	s := &Semaphore{
		max:       int64(max),
		clock:     clock.System(),
		logger:    sallust.Default(),
		resources: discard.NewGauge(),
		failures:  discard.NewCounter(),
		ceiling:   discard.NewGauge(),
	}

	for _, f := range o {
		f(s)
	}

	s.current.Store(int64(initial))
	s.available.Store(int64(initial))
	s.wake = event.NewAutoReset(false, event.WithClock(s.clock))
	s.ceiling.Set(float64(initial))
	return s
}

// acquire claims one permit according to the given policy.  On failure nothing is modified.
func (s *Semaphore) acquire(p policy, d time.Duration) error {
	var deadline time.Time
	if p == bounded {
		deadline = s.clock.Now().Add(d)
	}

	count := s.available.Load()
	for {
		if count == 0 {
			switch p {
			case pollOnly:
				return ErrTimeout

			case bounded:
				remaining := deadline.Sub(s.clock.Now())
				if remaining <= 0 || !s.wake.WaitFor(remaining) {
					return ErrTimeout
				}

			case infinite:
				s.wake.Wait()
			}

			count = s.available.Load()
			continue
		}

		// a plain decrement could take available below zero, so claim the permit with a CAS
		if !s.available.CompareAndSwap(count, count-1) {
			count = s.available.Load()
			continue
		}

		// the event releases one waiter per Set, so pass the wakeup along while permits remain
		if count > 1 {
			s.wake.Set()
		}

		return nil
	}
}

func (s *Semaphore) newPermit(err error) (*Permit, error) {
	if err != nil {
		s.failures.Add(1.0)
		return nil, err
	}

	s.resources.Add(1.0)
	return &Permit{s: s}, nil
}

// Wait blocks until a permit is available, then acquires it.
func (s *Semaphore) Wait() *Permit {
	p, _ := s.newPermit(s.acquire(infinite, 0))
	return p
}

// WaitFor attempts to acquire a permit within the given duration.  If the duration elapses first,
// ErrTimeout is returned.  A nonpositive duration is the same as TryWait.
func (s *Semaphore) WaitFor(d time.Duration) (*Permit, error) {
	if d <= 0 {
		return s.TryWait()
	}

	return s.newPermit(s.acquire(bounded, d))
}

// TryWait acquires a permit without blocking, returning ErrTimeout if none is available.
// A successful TryWait may take a permit ahead of goroutines already blocked in Wait.
func (s *Semaphore) TryWait() (*Permit, error) {
	return s.newPermit(s.acquire(pollOnly, 0))
}

// give returns n units to the available pool, waking a waiter if the pool was empty.
// A pool that was already nonempty had its wakeup armed by whoever last acquired from it.
func (s *Semaphore) give(n int64) {
	if s.available.Add(n) == n {
		s.wake.Set()
	}
}

// grow raises the ceiling by n, then makes the new units available.
func (s *Semaphore) grow(n int64) error {
	for {
		c := s.current.Load()
		if c > s.max-n {
			return ErrCeilingExceeded
		}

		if s.current.CompareAndSwap(c, c+n) {
			break
		}
	}

	s.give(n)
	s.ceilingChanged()
	return nil
}

// shrink withdraws n free units, then lowers the ceiling to match.  n must be positive.
func (s *Semaphore) shrink(n int64) error {
	if n <= 0 {
		return ErrInvalidCount
	}

	for {
		a := s.available.Load()
		if a < n {
			return ErrInsufficientPermits
		}

		if s.available.CompareAndSwap(a, a-n) {
			break
		}
	}

	s.current.Add(-n)
	s.ceilingChanged()
	return nil
}

func (s *Semaphore) ceilingChanged() {
	c := s.current.Load()
	s.ceiling.Set(float64(c))
	s.logger.Debug("semaphore ceiling changed", zap.Int64("ceiling", c), zap.Int64("max", s.max))
}

// TryRelease adds n new permits, raising the ceiling by n.  If that would take the ceiling
// past the maximum, ErrCeilingExceeded is returned and nothing is modified.  A negative n
// results in ErrInvalidCount.
//
// TryRelease creates permits.  To hand back a permit obtained from an acquire, use Permit.Release.
func (s *Semaphore) TryRelease(n int) error {
	switch {
	case n < 0:
		return ErrInvalidCount
	case n == 0:
		return nil
	default:
		return s.grow(int64(n))
	}
}

// Release is the unchecked form of TryRelease.  Any failure results in a panic.
func (s *Semaphore) Release(n int) {
	if err := s.TryRelease(n); err != nil {
		s.logger.Error("invalid semaphore release", zap.Int("count", n), zap.Error(err))
		panic(err)
	}
}

// TryModify adjusts both the ceiling and the available permits by delta.  Growth fails with
// ErrCeilingExceeded past the maximum.  Shrinking can only withdraw free permits, and fails with
// ErrInsufficientPermits otherwise.  On failure nothing is modified.
//
// TryModify is meant for callers that know no permit is borrowed against the units being changed.
// Permit.Forget is the way to shrink the ceiling by a permit that is held.
func (s *Semaphore) TryModify(delta int) error {
	switch {
	case delta > 0:
		return s.grow(int64(delta))
	case int64(delta) < -s.max:
		// more than could ever be free, and negating math.MinInt would overflow
		return ErrInsufficientPermits
	case delta < 0:
		return s.shrink(-int64(delta))
	default:
		return nil
	}
}

// Modify is the unchecked form of TryModify.  Any failure results in a panic.
func (s *Semaphore) Modify(delta int) {
	if err := s.TryModify(delta); err != nil {
		s.logger.Error("invalid semaphore modification", zap.Int("delta", delta), zap.Error(err))
		panic(err)
	}
}

// Available returns the number of permits that can be acquired right now.
func (s *Semaphore) Available() int {
	return int(s.available.Load())
}

// Ceiling returns the current number of permits in circulation, whether free or held.
func (s *Semaphore) Ceiling() int {
	return int(s.current.Load())
}

// Max returns the absolute maximum ceiling, fixed at construction.
func (s *Semaphore) Max() int {
	return int(s.max)
}

// String returns the state of the semaphore as "Semaphore(available/ceiling, max=N)".
func (s *Semaphore) String() string {
	return fmt.Sprintf("Semaphore(%d/%d, max=%d)", s.Available(), s.Ceiling(), s.max)
}
