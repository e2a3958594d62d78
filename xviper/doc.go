// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package xviper provides the viper conventions shared by the waitables commands: the standard
*nix configuration paths, binding the configuration file from a command line flag, environment
overrides, and unmarshaling with decode hooks for durations and comma-separated lists.
*/
package xviper
