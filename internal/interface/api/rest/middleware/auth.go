package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"project-manager-api/internal/application/ports"
)

const (
	CtxUserRole = "userRole"
	CtxUserID   = "userID"
)

// BearerToken returns the credential from an "Authorization: Bearer <token>" header, or "".
func BearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenStr == authHeader {
		return ""
	}
	return strings.TrimSpace(tokenStr)
}

func errorBody(msg string) gin.H {
	return gin.H{"error": gin.H{"code": "UNAUTHENTICATED", "message": msg}}
}

// AuthMiddleware stores the verified caller as CtxUserID (uuid.UUID) and CtxUserRole.
func AuthMiddleware(verifier ports.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody("missing Authorization header"))
			return
		}

		tokenStr := BearerToken(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody("invalid token format"))
			return
		}

		identity, err := verifier.Verify(c.Request.Context(), tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody("invalid token"))
			return
		}

		c.Set(CtxUserRole, identity.Role)
		c.Set(CtxUserID, identity.UserID)

		c.Next()
	}
}
