package middleware

import (
	"net/http"

	"github.com/ryan-miles/meals.stellation.one/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireOrigin denies non-OPTIONS requests whose Origin header is present
// and differs from the configured origin. Preflights pass through so the
// CORS layer can answer them; requests without an Origin header (same-site,
// curl, schedulers) are allowed.
func RequireOrigin(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		origin := c.GetHeader("Origin")
		if origin != "" && origin != allowedOrigin {
			common.LogError("origin mismatch, denying request",
				zap.String("origin", origin),
				zap.String("allowed_origin", allowedOrigin),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Origin not allowed",
			})
			return
		}

		c.Next()
	}
}
