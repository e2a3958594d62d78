// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package countdown provides Latch, a waitable counter of outstanding work.

A Latch starts with the number of tasks to wait for.  Each completed task calls Tick, and
waiters are released once the count reaches zero.  Unlike sync.WaitGroup, a Latch can be polled,
waited on with a timeout, grown with Increment while ticks are in flight, and re-armed with Reset.

Ticking while several units of work remain costs a single atomic decrement.  Only the operations
that move the count across zero take a short, non-blocking critical section to decide whether
waiters should be released.
*/
package countdown
