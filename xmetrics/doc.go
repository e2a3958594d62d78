// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package xmetrics provides the metric interfaces accepted by the countdown and semaphore packages,
along with a Prometheus-backed go-kit provider that realizes the metrics those packages describe.
*/
package xmetrics
