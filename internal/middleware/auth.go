package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"kanban-board-api/internal/response"
	"kanban-board-api/internal/service"
)

// sessionCookieName is the fallback token carrier for browser clients
const sessionCookieName = "kanban_session"

// TokenRevocationChecker reports whether a token JTI has been blacklisted
type TokenRevocationChecker interface {
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

// Auth returns a middleware that authenticates requests. The token is read
// from the Authorization header, falling back to the session cookie, then
// checked for signature, expiry and revocation. The resolved user id is
// stored in the gin context under "user_id".
func Auth(tokens *service.TokenManager, revocations TokenRevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			abortUnauthorized(c, "Authentication required")
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		revoked, err := revocations.IsTokenRevoked(ctx, claims.ID)
		if err != nil || revoked {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("jwtToken", tokenString)
		// Services read the user id from the request context
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), "user_id", claims.UserID))
		c.Next()
	}
}

// extractToken reads the bearer token, falling back to the session cookie
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	if cookie, err := c.Cookie(sessionCookieName); err == nil {
		return cookie
	}
	return ""
}

func abortUnauthorized(c *gin.Context, message string) {
	response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, message)
	c.Abort()
}
