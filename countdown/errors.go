// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package countdown

import "errors"

var (
	// ErrNegativeCount is the panic value when a Latch is created or reset with a negative count.
	ErrNegativeCount = errors.New("the latch count cannot be negative")

	// ErrOverTick indicates that a Latch was ticked after its count had already reached zero,
	// i.e. more completions were reported than were outstanding.
	ErrOverTick = errors.New("the latch was ticked more times than there was outstanding work")
)
