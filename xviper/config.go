// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xviper

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Configer is the subset of Viper behavior dealing with configuration paths and locations
type Configer interface {
	AddConfigPath(string)
	SetConfigName(string)
	SetConfigFile(string)
}

// AddStandardConfigPaths adds /etc/<app>, $HOME/.<app>, and the working directory as
// configuration paths, in that order.
func AddStandardConfigPaths(c Configer, applicationName string) {
	c.AddConfigPath(fmt.Sprintf("/etc/%s", applicationName))
	c.AddConfigPath(fmt.Sprintf("$HOME/.%s", applicationName))
	c.AddConfigPath(".")
}

// FlagLookup is the behavior expected of a pflag.FlagSet to lookup individual flags by longhand name.
type FlagLookup interface {
	Lookup(string) *pflag.Flag
}

// BindConfigFile passes the value of the given flag to c.SetConfigFile.  If the flag does not
// exist or is empty, c is not changed and this function returns false.
func BindConfigFile(c Configer, fl FlagLookup, flag string) bool {
	if f := fl.Lookup(flag); f != nil {
		if configFile := f.Value.String(); len(configFile) > 0 {
			c.SetConfigFile(configFile)
			return true
		}
	}

	return false
}
