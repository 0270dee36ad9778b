package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// ProviderTimeout bounds the request context handed to the identity provider
// and document store. A zero timeout leaves the context untouched.
func ProviderTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
