package middleware

import (
	"net/http"
	"strings"

	"github.com/cphub/cphub/backend/internal/tokens"
	"github.com/gin-gonic/gin"
)

// Context keys set by RequireAuth for downstream handlers.
const (
	CtxUserID   = "userId"
	CtxUsername = "username"
)

// RequireAuth returns a Gin middleware that verifies Bearer access tokens.
// A missing token is 401; a token that fails verification (bad signature,
// expired, malformed) is 403. On success the decoded identity is attached to
// the request context.
func RequireAuth(accessSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Access token is required",
			})
			return
		}

		claims, err := tokens.VerifyAccessToken(accessSecret, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Invalid or expired access token",
			})
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUsername, claims.Username)
		c.Next()
	}
}

// bearerToken extracts the token out of an "Authorization: Bearer <token>"
// header, returning "" when the header is absent or not a bearer credential.
func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
