package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// requireSession gates admin routes behind a verified bearer token. When no
// identity client is configured the whole admin surface is unavailable.
func (h *Handler) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.identity == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "admin sign-in is not configured"})
			return
		}

		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token == "" || token == c.GetHeader("Authorization") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		account, err := h.identity.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		c.Set("account", account)
		c.Next()
	}
}
