package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	authctx "github.com/GoSim-25-26J-441/social-graph-api/internal/auth"
)

const APIKeyHeader = "X-API-Key"

// APIKeyMiddleware requires the X-API-Key header to equal expected.
func APIKeyMiddleware(expected string) gin.HandlerFunc {
	want := []byte(expected)

	return func(c *gin.Context) {
		key := c.GetHeader(APIKeyHeader)

		if key == "" || subtle.ConstantTimeCompare([]byte(key), want) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
			return
		}

		c.Set(authctx.CtxAuthMethod, "apikey")
		c.Next()
	}
}
