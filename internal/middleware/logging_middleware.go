package middleware

import (
	"time"

	"textkeeper/pkg/logger"

	"github.com/gin-gonic/gin"
)

func LoggingMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		if userID := c.Param("userId"); userID != "" {
			c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), userID))
		}

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		log := l
		if log == nil {
			log = logger.GetGlobalLogger()
		}
		if log != nil {
			log.WithContext(c.Request.Context()).Infow("request",
				"method", method,
				"path", path,
				"status", status,
				"latency", latency.String(),
				"client_ip", c.ClientIP(),
			)
		}
	}
}
