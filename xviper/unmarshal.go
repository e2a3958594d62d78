// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xviper

import (
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type unmarshaler interface {
	Unmarshal(interface{}, ...viper.DecoderConfigOption) error
}

// DecodeHook is the decode hook used by Unmarshal.  It converts strings such as "250ms" into
// time.Duration values, and comma-separated strings into slices.
func DecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// Unmarshal decodes the configuration into each value in order, stopping at the first error.
func Unmarshal(u unmarshaler, v ...interface{}) error {
	var err error
	for i := 0; err == nil && i < len(v); i++ {
		err = u.Unmarshal(v[i], viper.DecodeHook(DecodeHook()))
	}

	return err
}
