package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"aigallery/internal/models"
)

const (
	currentSessionKey = "current_session"
	currentUserKey    = "current_user"
	accessTokenKey    = "access_token"
	tokenErrorKey     = "token_error"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.Session, models.User, error)
}

// Auth resolves the bearer token, if any, to the caller's session. Requests
// without a usable token, including stale ones, continue as anonymous.
// RequireLogin guards the routes that need a session.
func Auth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		session, user, err := auth.Authenticate(c.Request.Context(), tokenStr)
		if err != nil {
			c.Set(tokenErrorKey, err)
			c.Next()
			return
		}

		c.Set(accessTokenKey, tokenStr)
		c.Set(currentSessionKey, &session)
		c.Set(currentUserKey, user)

		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	token, found := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	return token, found && token != ""
}

// TokenError reports why a presented bearer token did not resolve, if one
// was presented.
func TokenError(c *gin.Context) error {
	val, exists := c.Get(tokenErrorKey)
	if !exists {
		return nil
	}
	err, _ := val.(error)
	return err
}

// CurrentSession returns the caller's session, or nil for anonymous callers.
func CurrentSession(c *gin.Context) *models.Session {
	val, exists := c.Get(currentSessionKey)
	if !exists {
		return nil
	}
	session, _ := val.(*models.Session)
	return session
}

func CurrentUser(c *gin.Context) (models.User, bool) {
	val, exists := c.Get(currentUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := val.(models.User)
	return user, ok
}
