package http

import (
	"strconv"
	"time"

	"golang-stock-sentiment/internal/sentiment/metrics"
	"golang-stock-sentiment/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RequestContext copies the request id set by echo's RequestID middleware into the request context
// so service logs carry it, and logs one line per request.
func RequestContext(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			if id == "" {
				id = req.Header.Get(echo.HeaderXRequestID)
			}
			if id != "" {
				c.SetRequest(req.WithContext(logger.ContextWithRequestID(req.Context(), id)))
			}

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			log.InfoContext(c.Request().Context(), "HTTP request",
				logger.StringField("method", req.Method),
				logger.StringField("path", req.URL.Path),
				logger.IntField("status", c.Response().Status),
				logger.DurationField("latency", time.Since(start)))
			return nil
		}
	}
}

// Metrics records request count and latency per route.
func Metrics(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			m.HTTPRequestsTotal.WithLabelValues(c.Request().Method, route, strconv.Itoa(c.Response().Status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(c.Request().Method, route).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
