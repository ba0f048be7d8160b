package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"blogbackend/internal/auth"
)

// Context keys under which the resolved identity is exposed to handlers.
const (
	ctxUserIDKey = "userID"
	ctxEmailKey  = "email"
	ctxRoleKey   = "role"
)

// Auth creates a Gin middleware for JWT bearer authentication. Every request
// is verified from scratch; nothing is cached across requests. On success the
// resolved user id, email, and role are stored in the request context.
func Auth(tokens *auth.TokenManager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer <token>"})
			c.Abort()
			return
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
				c.Abort()
				return
			}
			logger.Debug("Rejected token", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		// A token whose subject is not a user id yields no identity at all.
		userID, err := auth.UserID(claims)
		if err != nil {
			logger.Debug("Rejected token subject", zap.String("subject", claims.Subject), zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Set(ctxEmailKey, claims.Email)
		c.Set(ctxRoleKey, claims.Role)

		c.Next()
	}
}

// RequireRole admits the request only if the resolved role claim equals
// role exactly. There is no hierarchy; mismatches are forbidden, not
// unauthenticated. Must run after Auth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if Role(c) != role {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user's id from the request context.
// The second return is false if Auth did not run or did not admit.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ctxUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// Email returns the authenticated user's email claim, or "".
func Email(c *gin.Context) string {
	if v, ok := c.Get(ctxEmailKey); ok {
		if email, ok := v.(string); ok {
			return email
		}
	}
	return ""
}

// Role returns the authenticated user's role claim, or "".
func Role(c *gin.Context) string {
	if v, ok := c.Get(ctxRoleKey); ok {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}
