// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/xmidt-org/waitables/countdown"
	"github.com/xmidt-org/waitables/semaphore"
	"github.com/xmidt-org/waitables/xmetrics"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

func run(arguments []string) int {
	bootstrap := zap.Must(zap.NewProduction())
	defer bootstrap.Sync()

	v, err := newViper(newFlagSet(), arguments)
	if err != nil {
		bootstrap.Error("Could not configure Viper", zap.Error(err))
		return 1
	}

	config, err := newConfig(v)
	if err != nil {
		bootstrap.Error("Could not read configuration", zap.Error(err))
		return 1
	}

	logger, err := newLogger(config)
	if err != nil {
		bootstrap.Error("Could not create logger", zap.Error(err))
		return 1
	}

	defer logger.Sync()
	logger = logger.With(zap.Stringer("run", ksuid.New()))

	registry, err := xmetrics.NewRegistry(&config.Prometheus, countdown.Metrics, semaphore.Metrics)
	if err != nil {
		logger.Error("Could not create metrics registry", zap.Error(err))
		return 1
	}

	if len(config.Metrics) > 0 {
		l, err := net.Listen("tcp", config.Metrics)
		if err != nil {
			logger.Error("Could not listen for metrics", zap.String("address", config.Metrics), zap.Error(err))
			return 1
		}

		server := &http.Server{
			Handler:           newMetricsHandler(logger, registry),
			ReadHeaderTimeout: shutdownTimeout,
		}

		logger.Info("serving metrics", zap.Stringer("address", l.Addr()))
		go func() {
			if err := server.Serve(l); !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server exited", zap.Error(err))
			}
		}()

		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				logger.Error("metrics server did not shut down cleanly", zap.Error(err))
			}
		}()
	}

	r := newRunner(config, logger, registry)
	r.run()
	return 0
}

func main() {
	os.Exit(run(os.Args[1:]))
}
