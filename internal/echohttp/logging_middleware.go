package echohttp

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
)

// custom echo middleware used for request logging. Every line carries the
// request id assigned by the request id middleware so submission failures
// can be correlated with the storage and database logs.
func logger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			now := time.Now()

			err := next(c)

			slog.Info("handled request",
				"requestID", c.Response().Header().Get(echo.HeaderXRequestID),
				"method", c.Request().Method,
				"route", c.Path(),
				"url", c.Request().URL,
				"status", c.Response().Status,
				"duration", time.Since(now),
			)
			return err
		}
	}
}
