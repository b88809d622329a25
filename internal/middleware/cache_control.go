package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CacheControl marks API reads as non-cacheable. Alert lists carry
// per-user seen state, so a shared cache would serve stale overlays.
func CacheControl() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.Header("Cache-Control", "no-store")
		}
		c.Next()
	}
}
