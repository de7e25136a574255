package middleware

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
)

// Logging writes a concise structured line for each HTTP request.
func Logging(logger *log.Logger) echo.MiddlewareFunc {
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.WithPrefix("http")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			latency := time.Since(start)

			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			kv := []any{
				"request_id", RequestIDFromContext(c),
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", status,
				"latency", latency,
			}
			switch {
			case status >= 500:
				logger.Error("request", append(kv, "err", err)...)
			case status >= 400:
				logger.Warn("request", kv...)
			default:
				logger.Info("request", kv...)
			}

			return err
		}
	}
}
