package middleware

import (
	"strconv"
	"time"

	"jabRental/pkg/logger"
	"jabRental/pkg/metrics"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// RequestID tags every request with a uuid X-Request-ID.
func RequestID() echo.MiddlewareFunc {
	return echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	})
}

// RequestLogger logs one line per request and records handler latency.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// let the error handler write the final status before logging
				c.Error(err)
			}
			elapsed := time.Since(start)

			status := c.Response().Status
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}

			metrics.HTTPRequestDuration.
				WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).
				Observe(elapsed.Seconds())

			logger.Info("http",
				"method", c.Request().Method,
				"path", path,
				"status", status,
				"latency_ms", elapsed.Milliseconds(),
				"req_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"ip", c.RealIP(),
			)

			return nil
		}
	}
}
