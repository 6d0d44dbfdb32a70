package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const UserKey = "user"

// LoadUser reads the caller identity from the X-Username header and sets it
// on the context. The name is trusted as-is; authentication lives outside
// this service.
func LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if name := strings.TrimSpace(c.GetHeader("X-Username")); name != "" {
			c.Set(UserKey, name)
		}
		c.Next()
	}
}

// IdentityRequired rejects requests that carry no identity header.
func IdentityRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(UserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "X-Username header required"})
			return
		}
		c.Next()
	}
}

// Username returns the identity set by LoadUser, empty when absent.
func Username(c *gin.Context) string {
	if v, exists := c.Get(UserKey); exists {
		return v.(string)
	}
	return ""
}
