package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/congress-app/congress-backend/utils"
)

// AuthMiddleware verifies the bearer token and exposes the authenticated
// participant id and role to downstream handlers. The attendance core
// trusts the id published here without re-verifying it.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		tokenString = strings.TrimPrefix(tokenString, "Bearer ")
		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			if err.Error() == "token has expired" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			c.Abort()
			return
		}

		c.Set("participant_id", claims.ParticipantID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// AdminOnlyMiddleware restricts access to admin participants
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// OwnershipMiddleware ensures that a participant can only update their own
// data (unless they are an admin)
func OwnershipMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		participantID := c.GetString("participant_id")
		role := c.GetString("role")

		if role == "admin" || participantID == c.Param("id") {
			c.Next()
			return
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to update this resource"})
		c.Abort()
	}
}
