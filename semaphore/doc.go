// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package semaphore provides a counting semaphore whose ceiling can be adjusted after construction.

A Semaphore is created with an initial number of permits and an absolute maximum.  Acquiring
returns a Permit, which is handed back with Release, typically deferred:

	p := s.Wait()
	defer p.Release()

Three quantities are tracked, and at every instant available <= ceiling <= max:

  - max is fixed at construction.
  - the ceiling is the number of permits currently in circulation, whether free or held.  Release
    and Modify grow it, and Permit.Forget and Modify shrink it.
  - available is the number of permits that can be acquired right now.

Acquisition never takes a lock.  Free permits are claimed with a compare-and-swap loop, and a
goroutine that finds none parks on an edge-triggered event.  Whoever acquires a permit and leaves
others available re-arms that event, so wakeups cascade through the blocked goroutines as permits
free up.  There is no FIFO ordering among waiters.
*/
package semaphore
