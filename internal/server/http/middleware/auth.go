package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/freshfold/freshfold/internal/pkg/auth"
)

const (
	// UserIDContextKey is a gin context key for authenticated user identifier.
	UserIDContextKey = "userID"
	authCookieName   = "freshfold_token"
)

// TokenParser validates an auth token and resolves the user it belongs to.
type TokenParser interface {
	ParseToken(token string) (int64, error)
}

// AuthRequired ensures user is authenticated before accessing handler.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		userID, err := parser.ParseToken(token)
		if err != nil {
			if err == pkgAuth.ErrInvalidToken {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(UserIDContextKey, userID)
		c.Next()
	}
}

// SameUser rejects requests whose :userId path parameter does not match the
// authenticated user. Must run after AuthRequired.
func SameUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, exists := c.Get(UserIDContextKey)
		if !exists {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		authedID, ok := raw.(int64)
		if !ok {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		pathID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
		if err != nil || pathID != authedID {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
