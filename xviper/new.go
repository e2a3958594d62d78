// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xviper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultFileFlag is the flag that names an explicit configuration file
const DefaultFileFlag = "file"

// Option configures a Viper instance
type Option func(*viper.Viper) error

// WithConfigFile binds the configuration file to the value of the given flag, if that flag was set.
// Otherwise, viper searches the configured paths for a file named after the application.
func WithConfigFile(fs *pflag.FlagSet, flag string) Option {
	return func(v *viper.Viper) error {
		BindConfigFile(v, fs, flag)
		return nil
	}
}

// WithFlags binds every flag in the set, so that command line values override all other sources.
func WithFlags(fs *pflag.FlagSet) Option {
	return func(v *viper.Viper) error {
		return v.BindPFlags(fs)
	}
}

// WithEnv enables environment overrides using the given prefix.  Dashes in keys become underscores,
// so the key log-level is read from PREFIX_LOG_LEVEL.
func WithEnv(prefix string) Option {
	return func(v *viper.Viper) error {
		v.SetEnvPrefix(prefix)
		v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
		v.AutomaticEnv()
		return nil
	}
}

// WithDefaults sets a default for each key in the map.
func WithDefaults(d map[string]interface{}) Option {
	return func(v *viper.Viper) error {
		for key, value := range d {
			v.SetDefault(key, value)
		}

		return nil
	}
}

// StdOptions is the usual setup for a command: the standard configuration paths and config name
// for the application, environment overrides prefixed with the application name, the file flag,
// and finally the flags themselves.
func StdOptions(applicationName string, fs *pflag.FlagSet) []Option {
	return []Option{
		func(v *viper.Viper) error {
			AddStandardConfigPaths(v, applicationName)
			v.SetConfigName(applicationName)
			return nil
		},
		WithEnv(applicationName),
		WithConfigFile(fs, DefaultFileFlag),
		WithFlags(fs),
	}
}

// New creates a Viper instance and applies each option in order.
func New(o ...Option) (*viper.Viper, error) {
	v := viper.New()
	for _, f := range o {
		if err := f(v); err != nil {
			return nil, err
		}
	}

	return v, nil
}

// ReadInConfig reads the configuration file.  A missing file is not an error when the file
// was searched for, since commands can run on flags and defaults alone.  An explicit file that
// cannot be read is always an error.
func ReadInConfig(v *viper.Viper) error {
	err := v.ReadInConfig()

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	} else if err != nil {
		return fmt.Errorf("unable to read configuration: %w", err)
	}

	return nil
}
