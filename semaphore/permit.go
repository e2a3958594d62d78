// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"errors"
	"sync/atomic"
)

// ErrPermitReleased is returned when a Permit that was already released or forgotten is used again.
var ErrPermitReleased = errors.New("the permit has already been released or forgotten")

// Permit is one unit of concurrency granted by a Semaphore.  Exactly one of Release or Forget
// takes effect, so the usual pattern is to defer Release and call Forget on the paths that should
// retire the permit instead:
//
//	p := s.Wait()
//	defer p.Release()
//	if retire {
//	    p.Forget() // the deferred Release becomes a no-op
//	}
type Permit struct {
	s    *Semaphore
	used atomic.Bool
}

// Release hands this permit back to its semaphore.  It returns ErrPermitReleased, and does
// nothing, if the permit was already released or forgotten.
func (p *Permit) Release() error {
	if !p.used.CompareAndSwap(false, true) {
		return ErrPermitReleased
	}

	p.s.resources.Add(-1.0)
	p.s.give(1)
	return nil
}

// Forget retires this permit: rather than returning to the pool, it permanently lowers the
// semaphore's ceiling by one.  It returns ErrPermitReleased, and does nothing, if the permit was
// already released or forgotten.
func (p *Permit) Forget() error {
	if !p.used.CompareAndSwap(false, true) {
		return ErrPermitReleased
	}

	p.s.resources.Add(-1.0)

	// the held unit is not in available, so available <= current still holds afterward
	p.s.current.Add(-1)
	p.s.ceilingChanged()
	return nil
}
