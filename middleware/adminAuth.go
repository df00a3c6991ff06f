package middleware

import (
	"net/http"
	"strings"

	"lumera/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthAdminMiddleware guards admin routes with a bearer JWT issued by the
// operator login endpoint.
func JWTAuthAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		email, err := utils.ValidateAdminToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}

		c.Set("adminEmail", email)
		c.Set("isAdmin", true)
		c.Next()
	}
}
