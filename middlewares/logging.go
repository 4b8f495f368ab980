package middlewares

import (
	"net"
	"time"

	"github.com/restbase/restbase/internal"
)

// Logging returns middleware that logs one line per request: method, path,
// client address, response status, and duration. Errors returned by the
// handler are logged and passed through to the error handler untouched.
//
// Place it after RequestID so log lines carry the request's ID.
func Logging() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()

			c.LogInfo("request started",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"client", clientAddr(c),
			)

			err := next(c)
			duration := time.Since(start)

			attrs := []any{
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"duration", duration.String(),
			}
			if rw := c.ResponseWriter(); rw != nil {
				attrs = append(attrs, "status", rw.Status(), "bytes", rw.Size())
			}

			if err != nil {
				attrs = append(attrs, "error", err.Error())
				c.LogError("request failed", attrs...)
				return err
			}

			c.LogInfo("request completed", attrs...)
			return nil
		}
	}
}

// clientAddr returns the request's client address without the port.
func clientAddr(c internal.Context) string {
	addr := c.Request().RemoteAddr
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
