// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/orquideira/internal/logger"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orquideira_http_requests_total",
		Help: "Total number of HTTP API requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "orquideira_http_request_duration_seconds",
		Help:    "Duration of HTTP API requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})
)

// requestLogger puts the request id into the request context and logs
// one line per request.
func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		id := c.Response().Header().Get(echo.HeaderXRequestID)
		ctx := logger.ContextWithID(req.Context(), id)
		c.SetRequest(req.WithContext(ctx))

		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}
		logger.For(ctx).WithFields(logrus.Fields{
			"method":   req.Method,
			"path":     req.URL.Path,
			"status":   c.Response().Status,
			"duration": time.Since(start).String(),
			"remote":   c.RealIP(),
		}).Info("request")
		return nil
	}
}

// requestMetrics counts requests per route template.
func requestMetrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}
		path := c.Path()
		if path == "" {
			path = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(c.Request().Method, path, strconv.Itoa(c.Response().Status)).Inc()
		httpRequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
		return nil
	}
}
