package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"bhavan/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs every request and converts panics into a generic 500.
// Stack traces stay server-side; outside prod the panic message is echoed
// in the response details.
func RequestLogger(appEnv string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		defer func() {
			if recovered := recover(); recovered != nil {
				slog.Error("panic recovered",
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"client_ip", c.ClientIP(),
					"error", fmt.Sprintf("%v", recovered),
					"stack", string(debug.Stack()),
				)
				if appEnv == "prod" {
					response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
				} else {
					response.ErrorWithDetails(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", fmt.Sprintf("%v", recovered))
				}
				c.Abort()
				return
			}

			attrs := []any{
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"status", c.Writer.Status(),
				"client_ip", c.ClientIP(),
				"latency", time.Since(start).String(),
			}
			if uid := c.GetInt64("user_id"); uid != 0 {
				attrs = append(attrs, "user_id", uid)
			}
			if c.Writer.Status() >= http.StatusInternalServerError {
				slog.Error("request failed", attrs...)
			} else {
				slog.Info("request", attrs...)
			}
		}()

		c.Next()
	}
}
