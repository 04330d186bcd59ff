package auth

import "github.com/gin-gonic/gin"

// GetUserID returns the authenticated caller's identity ID or empty string.
func GetUserID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetUserRole returns the role claim carried by the caller's token, or empty string.
// Authorization decisions re-check the stored identity; this is a hint only.
func GetUserRole(c *gin.Context) string {
	if v, ok := c.Get("userRole"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
