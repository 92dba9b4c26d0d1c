package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/scratchboard/dashboard/pkg/metrics"
)

// AdminTokenKey is the gin context key holding the verified bearer token.
const AdminTokenKey = "admin_token"

// TokenVerifier is the minimal interface the gate depends on.
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) error
}

// AdminAuth rejects requests without a valid "Bearer <token>" header.
// A missing header is 401; anything malformed or unverifiable is 403.
func AdminAuth(ver TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			metrics.AdminAuthFailures.WithLabelValues("missing").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization token is missing!"})
			return
		}
		token, ok := bearerToken(auth)
		if !ok {
			metrics.AdminAuthFailures.WithLabelValues("malformed").Inc()
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Invalid or expired token!"})
			return
		}
		if err := ver.Verify(c.Request.Context(), token); err != nil {
			metrics.AdminAuthFailures.WithLabelValues("invalid").Inc()
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Invalid or expired token!"})
			return
		}

		c.Set(AdminTokenKey, token)
		c.Next()
	}
}

// bearerToken splits "Bearer <token>" on its single space.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" || token == "" || strings.Contains(token, " ") {
		return "", false
	}
	return token, true
}
