package middleware

import (
	"net/http"
	"strings"

	"matero/models"
	"matero/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware validates the bearer token and stores the caller's
// identity in the request context for handlers downstream.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		ident, err := utils.IdentityFromToken(tokenString)
		if err != nil || ident.UserID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		c.Set("userID", ident.UserID)
		c.Set("username", ident.Username)
		c.Set("role", ident.Role)
		c.Next()
	}
}

// SubmitterFromContext rebuilds the authenticated identity stored by
// JWTAuthMiddleware.
func SubmitterFromContext(c *gin.Context) models.Submitter {
	var ident models.Submitter
	if v, ok := c.Get("userID"); ok {
		ident.UserID, _ = v.(string)
	}
	if v, ok := c.Get("username"); ok {
		ident.Username, _ = v.(string)
	}
	if v, ok := c.Get("role"); ok {
		ident.Role, _ = v.(string)
	}
	return ident
}
