package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/acharjeesuvo/EvalMind/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const sessionKey = "session"

// AuthMiddleware resolves the bearer token to a live session and stores it in the gin context.
func AuthMiddleware(tokens *session.TokenIssuer, sessions *session.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer <token>"})
			return
		}

		claims, err := tokens.Parse(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
				return
			}
			logger.Debug("Invalid JWT token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		sess, ok := sessions.Get(claims.ID)
		if !ok || sess.UserID != claims.UserID {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session ended, please log in again"})
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// CurrentSession returns the session stored by AuthMiddleware. Outside an
// authenticated route it returns a logged-out session.
func CurrentSession(c *gin.Context) session.Session {
	if v, ok := c.Get(sessionKey); ok {
		if sess, ok := v.(session.Session); ok {
			return sess
		}
	}
	return session.Session{State: session.LoggedOut}
}
