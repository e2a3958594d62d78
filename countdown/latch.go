// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package countdown

import (
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

// Latch blocks waiters until its count of outstanding work reaches zero.  A Latch is safe
// for concurrent use and may be stored in a package-level variable:
//
//	var ready = countdown.New(3)
//
// The zero value is not usable; use New.
type Latch struct {
	// remaining never goes below zero.  Tick refuses to decrement it past that floor.
	remaining atomic.Int64

	// done is set exactly when the last arbitration observed remaining <= 0
	done *event.ManualReset

	// arbiter is a single token, initially available, held by whichever goroutine is
	// deciding the state of done.
	arbiter *event.AutoReset

	clock          clock.Interface
	logger         *zap.Logger
	remainingGauge xmetrics.Adder
	overTicks      xmetrics.Adder
}

var _ event.Waiter = (*Latch)(nil)

// New creates a Latch that releases waiters after n calls to Tick.  A Latch created with a
// zero count is already released.  A negative count results in a panic with ErrNegativeCount.
func New(n int, o ...Option) *Latch {
	if n < 0 {
		panic(ErrNegativeCount)
	}

	cl := &Latch{
		clock:          clock.System(),
		logger:         sallust.Default(),
		remainingGauge: discard.NewGauge(),
		overTicks:      discard.NewCounter(),
	}

	for _, f := range o {
		f(cl)
	}

	cl.remaining.Store(int64(n))
	cl.done = event.NewManualReset(n == 0, event.WithClock(cl.clock))
	cl.arbiter = event.NewAutoReset(true)
	cl.remainingGauge.Add(float64(n))
	return cl
}

// arbitrate makes done agree with the current sign of remaining.  Only goroutines whose update
// moved remaining across zero get here, so this is the one place where callers may briefly queue
// behind each other.  The arbiter is held across a load and an event update, never a wait.
func (cl *Latch) arbitrate() {
	cl.arbiter.Wait()
	if r := cl.remaining.Load(); r <= 0 {
		cl.done.Set()
		cl.logger.Debug("latch released")
	} else {
		cl.done.Reset()
		cl.logger.Debug("latch rearmed", zap.Int64("remaining", r))
	}

	cl.arbiter.Set()
}

// add applies delta to remaining and arbitrates if that crossed zero.  The previous value is returned.
func (cl *Latch) add(delta int64) int64 {
	next := cl.remaining.Add(delta)
	prev := next - delta
	if (prev > 0) != (next > 0) {
		cl.arbitrate()
	}

	return prev
}

func (cl *Latch) tick() error {
	for {
		r := cl.remaining.Load()
		if r <= 0 {
			cl.overTicks.Add(1.0)
			return ErrOverTick
		}

		if cl.remaining.CompareAndSwap(r, r-1) {
			cl.remainingGauge.Add(-1.0)
			if r == 1 {
				cl.arbitrate()
			}

			return nil
		}
	}
}

// Tick reports the completion of one unit of work.  The call that brings the count to zero
// releases all waiters.
//
// Ticking a latch whose count is already zero is a programming error: the count is left at zero
// and Tick panics with ErrOverTick.  Use TryTick where extra completions must be tolerated.
func (cl *Latch) Tick() {
	if err := cl.tick(); err != nil {
		cl.logger.Error("latch ticked past zero", zap.Error(err))
		panic(err)
	}
}

// TryTick is the checked form of Tick.  If the count is already zero, it returns ErrOverTick
// and leaves the latch unchanged.
func (cl *Latch) TryTick() error {
	err := cl.tick()
	if err != nil {
		cl.logger.Debug("rejected latch tick", zap.Error(err))
	}

	return err
}

// Increment adds one unit of outstanding work.  Incrementing a released latch rearms it, and
// is safe while other goroutines are ticking.
func (cl *Latch) Increment() {
	cl.add(1)
	cl.remainingGauge.Add(1.0)
}

// Reset reinitializes the count to n, rearming the latch unless n is zero.  Unlike Tick and
// Increment, Reset is not a transition: callers that reset a latch other goroutines are still
// ticking are responsible for the result.  A negative count results in a panic with ErrNegativeCount.
func (cl *Latch) Reset(n int) {
	if n < 0 {
		panic(ErrNegativeCount)
	}

	prev := cl.remaining.Swap(int64(n))
	cl.remainingGauge.Add(float64(int64(n) - prev))
	if n == 0 {
		cl.arbitrate()
	} else {
		cl.done.Reset()
	}
}

// Count returns the amount of outstanding work.
func (cl *Latch) Count() int {
	return int(cl.remaining.Load())
}

// Wait blocks until the count reaches zero.
func (cl *Latch) Wait() {
	cl.done.Wait()
}

// WaitFor blocks until the count reaches zero or d elapses, returning true in the former case.
func (cl *Latch) WaitFor(d time.Duration) bool {
	return cl.done.WaitFor(d)
}

// TryWait returns true if the count is zero, without blocking.
func (cl *Latch) TryWait() bool {
	return cl.done.TryWait()
}

func (cl *Latch) String() string {
	return fmt.Sprintf("Latch(remaining=%d)", cl.Count())
}
