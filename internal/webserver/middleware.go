package webserver

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/random"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// requestID carries over a caller-supplied request id or mints one.
func requestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(requestIDHeader)
			if rid == "" {
				rid = random.String(16)
			}
			c.Response().Header().Set(requestIDHeader, rid)
			c.Set("request_id", rid)
			return next(c)
		}
	}
}

// zapLogger logs one line per request through the global zap logger.
func zapLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", res.Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("remote_ip", c.RealIP()),
			}
			if rid, ok := c.Get("request_id").(string); ok {
				fields = append(fields, zap.String("request_id", rid))
			}
			if res.Status >= 500 {
				zap.L().Error("http request", fields...)
			} else {
				zap.L().Info("http request", fields...)
			}
			return nil
		}
	}
}
