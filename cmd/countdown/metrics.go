// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const metricsPath = "/metrics"

// accessLog logs each scrape at debug level
func accessLog(logger *zap.Logger) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
			start := time.Now()
			next.ServeHTTP(response, request)
			logger.Debug("served request",
				zap.String("method", request.Method),
				zap.String("path", request.URL.Path),
				zap.String("remoteAddr", request.RemoteAddr),
				zap.Duration("elapsed", time.Since(start)),
			)
		})
	}
}

func traced(operation string) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, operation)
	}
}

// newMetricsHandler routes GET /metrics to the gatherer.  Any other request is a 404 or 405.
func newMetricsHandler(logger *zap.Logger, g prometheus.Gatherer) http.Handler {
	router := mux.NewRouter()
	router.Handle(
		metricsPath,
		alice.New(traced("metrics"), accessLog(logger)).Then(
			promhttp.HandlerFor(g, promhttp.HandlerOpts{
				ErrorLog:      zap.NewStdLog(logger),
				ErrorHandling: promhttp.ContinueOnError,
			}),
		),
	).Methods(http.MethodGet)

	return router
}
