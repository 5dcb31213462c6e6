package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/httpapi/permission"
	"reviewhub/internal/httpapi/service"
)

// AuthMiddleware is a Gin middleware for JWT authentication of API requests.
// It checks for the presence and validity of a JWT token in the Authorization header.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		// Extract token (format: "Bearer <token>")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		// Set user info in context for handlers to use
		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// RoleFromContext reads the token role set by AuthMiddleware.
func RoleFromContext(c *gin.Context) permission.Role {
	roleValue, exists := c.Get("role")
	if !exists {
		return permission.Role("")
	}
	role, ok := roleValue.(string)
	if !ok {
		return permission.Role("")
	}
	return permission.ParseRole(role)
}

// RequireCatalogWrite gates Category/Genre/Title mutations behind the
// permission evaluator. Reads never pass through here.
func RequireCatalogWrite() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !permission.CanWriteCatalog(RoleFromContext(c)) {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireUserAdmin gates the administrative /users endpoints.
func RequireUserAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !permission.CanAdminUsers(RoleFromContext(c)) {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}
