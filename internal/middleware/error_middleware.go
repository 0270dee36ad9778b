package middleware

import (
	"net/http"

	"textkeeper/internal/transport/httpdto"
	"textkeeper/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler logs the errors handlers attached to the context. Server-side
// failures log at error level, client errors at warn. If a handler recorded
// an error without writing a response, a generic 500 is written.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := c.Writer.Status()

		log := l
		if log == nil {
			log = logger.GetGlobalLogger()
		}
		if log != nil {
			sugar := log.WithContext(c.Request.Context())
			if status >= http.StatusInternalServerError {
				sugar.Errorw("request error", "method", c.Request.Method, "path", c.FullPath(), "status", status, "error", err)
			} else {
				sugar.Warnw("request rejected", "method", c.Request.Method, "path", c.FullPath(), "status", status, "error", err)
			}
		}

		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("internal error", "INTERNAL_ERROR"))
		}
	}
}
