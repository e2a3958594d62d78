// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package clock abstracts the time package so that the deadlines of timed waits can be
driven by tests.
*/
package clock
