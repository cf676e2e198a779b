package mw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fleet-service-backend/internal/auth"
	"fleet-service-backend/internal/scope"
)

const principalKey = "principal"

// Principal returns the authenticated principal stored on the context,
// or nil when the request carried no valid access token.
func Principal(c *gin.Context) *scope.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*scope.Principal)
	return p
}

// Authenticate resolves a Bearer access token into a principal and
// stores it on the context. Requests without a token pass through
// unauthenticated; RequireAuth decides whether that is acceptable.
func Authenticate(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		claims, err := issuer.VerifyAccess(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(principalKey, &scope.Principal{ID: claims.UserID, Role: claims.Role})
		c.Next()
	}
}

// RequireAuth rejects unauthenticated requests with 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Principal(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}
