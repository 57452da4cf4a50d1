// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/brightstore-backend/internal/config"
	"github.com/your-org/brightstore-backend/internal/pkg/auth"
)

// Context keys set by the auth middleware
const (
	ContextUserID       = "user_id"
	ContextUserEmail    = "user_email"
	ContextSessionToken = "session_token"
)

// OptionalAuth extracts and validates a bearer session token when one is
// present. The raw token is always kept in the request context — checkout
// forwards it verbatim to the remote order API — while the user identity
// is only set when the token validates. Requests without a token proceed
// as guests.
func OptionalAuth(cfg *config.Config) gin.HandlerFunc {
	jwtManager := auth.NewJWTManager(cfg)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString := auth.ExtractTokenFromHeader(authHeader)
		if tokenString == "" {
			c.Next()
			return
		}

		c.Set(ContextSessionToken, tokenString)

		claims, err := jwtManager.ValidateSessionToken(tokenString)
		if err != nil {
			// Invalid for us, but still forwarded downstream as-is
			c.Next()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserEmail, claims.Email)

		c.Next()
	}
}

// GetUserIDFromContext extracts the authenticated user id, if any
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, exists := c.Get(ContextUserID)
	if !exists {
		return "", false
	}
	return userID.(string), true
}

// GetUserEmailFromContext extracts the authenticated user email, if any
func GetUserEmailFromContext(c *gin.Context) (string, bool) {
	email, exists := c.Get(ContextUserEmail)
	if !exists {
		return "", false
	}
	return email.(string), true
}

// GetSessionTokenFromContext extracts the raw bearer token, if any
func GetSessionTokenFromContext(c *gin.Context) string {
	token, exists := c.Get(ContextSessionToken)
	if !exists {
		return ""
	}
	return token.(string)
}
