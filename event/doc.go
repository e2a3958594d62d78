// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package event provides the two blocking signal primitives that the countdown and semaphore
packages are built on.

A ManualReset is level-triggered: once Set, it releases every current and future waiter until
it is explicitly Reset.

An AutoReset is edge-triggered: each Set releases at most one waiter.  If nobody is blocked at
the time, exactly one wake is held for the next waiter.  Pending wakes never accumulate beyond one.

Both types, and anything else that can be waited on, implement Waiter.
*/
package event
