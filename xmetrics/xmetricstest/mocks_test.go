// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xmetricstest

import (
	"fmt"

	"github.com/stretchr/testify/mock"
)

// mockTestingT records failures instead of failing the enclosing test
type mockTestingT struct {
	mock.Mock
}

func (m *mockTestingT) Errorf(format string, arguments ...interface{}) {
	m.Called(fmt.Sprintf(format, arguments...))
}
