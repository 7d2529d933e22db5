package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireLogin keeps anonymous callers in the login view: gallery and detail
// routes answer 401 until a session exists. A presented token that did not
// resolve is reported as invalid_token.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentSession(c).Authenticated() {
			if TokenError(c) != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login_required"})
			return
		}

		c.Next()
	}
}
