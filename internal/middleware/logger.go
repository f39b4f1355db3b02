package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger logs each request through zap.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if sess := CurrentSession(c); sess.UserID != "" {
			fields = append(fields, zap.String("user_id", sess.UserID))
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.Error("Request failed", fields...)
		case len(c.Errors) > 0:
			logger.Warn("Request completed with errors", append(fields, zap.String("errors", c.Errors.String()))...)
		default:
			logger.Info("Request handled", fields...)
		}
	}
}
