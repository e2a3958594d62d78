// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/xmidt-org/waitables/xmetrics"
	"github.com/xmidt-org/waitables/xviper"
	"go.uber.org/zap"
)

const (
	applicationName = "countdown"

	TasksKey       = "tasks"
	WorkersKey     = "workers"
	ConcurrencyKey = "concurrency"
	ProgressKey    = "progress"
	WorkKey        = "work"
	LogLevelKey    = "log-level"
	MetricsKey     = "metrics"

	DefaultTasks       = 750
	DefaultWorkers     = 4
	DefaultConcurrency = 2
	DefaultProgress    = time.Second
	DefaultWork        = 10 * time.Millisecond
	DefaultLogLevel    = "info"
)

var errInvalidConfig = errors.New("invalid configuration")

// Config is the complete configuration for the countdown command.  Every field
// can be set from a flag, a PREFIXED environment variable, or the configuration file.
type Config struct {
	// Tasks is the number of tasks to run.  The latch starts at this count.
	Tasks int `mapstructure:"tasks"`

	// Workers is the number of goroutines that pull tasks.
	Workers int `mapstructure:"workers"`

	// Concurrency is the number of semaphore permits, which bounds how many
	// workers may be doing work at once.
	Concurrency int `mapstructure:"concurrency"`

	// Progress is how often the remaining count is logged while waiting.
	Progress time.Duration `mapstructure:"progress"`

	// Work is how long each task takes.
	Work time.Duration `mapstructure:"work"`

	LogLevel string `mapstructure:"log-level"`

	// Metrics is the address to serve /metrics on.  If unset, no server is started.
	Metrics string `mapstructure:"metrics"`

	// Prometheus configures the metrics registry, and can only be set in the configuration file.
	Prometheus xmetrics.Options `mapstructure:"prometheus"`
}

func (c Config) validate() error {
	switch {
	case c.Tasks < 0:
		return fmt.Errorf("%w: %s cannot be negative", errInvalidConfig, TasksKey)
	case c.Workers < 1:
		return fmt.Errorf("%w: %s must be positive", errInvalidConfig, WorkersKey)
	case c.Concurrency < 1:
		return fmt.Errorf("%w: %s must be positive", errInvalidConfig, ConcurrencyKey)
	case c.Progress <= 0:
		return fmt.Errorf("%w: %s must be positive", errInvalidConfig, ProgressKey)
	case c.Work < 0:
		return fmt.Errorf("%w: %s cannot be negative", errInvalidConfig, WorkKey)
	default:
		return nil
	}
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(applicationName, pflag.ContinueOnError)
	fs.StringP(xviper.DefaultFileFlag, "f", "", "the configuration file to use instead of searching the standard locations")
	fs.Int(TasksKey, DefaultTasks, "the number of tasks to run")
	fs.Int(WorkersKey, DefaultWorkers, "the number of worker goroutines")
	fs.Int(ConcurrencyKey, DefaultConcurrency, "the maximum number of tasks running at once")
	fs.Duration(ProgressKey, DefaultProgress, "how often to report progress")
	fs.Duration(WorkKey, DefaultWork, "how long each task takes")
	fs.String(LogLevelKey, DefaultLogLevel, "the log level")
	fs.String(MetricsKey, "", "the address to serve prometheus metrics on, e.g. :9090")
	return fs
}

// newViper parses the command line and produces the viper instance that backs the Config.
func newViper(fs *pflag.FlagSet, arguments []string) (*viper.Viper, error) {
	if err := fs.Parse(arguments); err != nil {
		return nil, err
	}

	v, err := xviper.New(xviper.StdOptions(applicationName, fs)...)
	if err != nil {
		return nil, err
	}

	if err := xviper.ReadInConfig(v); err != nil {
		return nil, err
	}

	return v, nil
}

func newConfig(v *viper.Viper) (Config, error) {
	var c Config
	if err := xviper.Unmarshal(v, &c); err != nil {
		return Config{}, fmt.Errorf("unable to unmarshal configuration: %w", err)
	}

	return c, c.validate()
}

// newLogger builds a production JSON logger at the configured level.
func newLogger(c Config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errInvalidConfig, err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = level
	zc.Sampling = nil
	return zc.Build(zap.Fields(zap.String("application", applicationName)))
}
