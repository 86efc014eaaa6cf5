package middleware

import (
	"net/http"
	"strings"

	"github.com/01moynul/flower-pricing-golang/internal/auth"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware creates a gin.HandlerFunc that acts as our "security guard".
// It validates the Bearer token and stores the signed-in email on the context.
func AuthMiddleware(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. --- Get Authorization Header ---
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format (must be Bearer)"})
			c.Abort()
			return
		}

		// 2. --- Validate Token ---
		email, err := gate.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		// 3. --- Success ---
		c.Set("userEmail", email)
		c.Set("canAccessRestricted", gate.CanAccessRestricted(email))
		c.Next()
	}
}

// RestrictedMiddleware only lets allowlisted users through. It must run after AuthMiddleware.
func RestrictedMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("canAccessRestricted") {
			c.JSON(http.StatusForbidden, gin.H{"error": auth.ErrForbidden.Error()})
			c.Abort()
			return
		}
		c.Next()
	}
}
