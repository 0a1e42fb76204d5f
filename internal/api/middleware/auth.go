package middleware

import (
	"inventory-api/internal/models"
	"inventory-api/internal/services"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the name of the session token cookie
const SessionCookie = "token"

// AuthMiddleware resolves the session cookie into an authenticated user.
// It rejects with 401 when the cookie is absent, the token fails
// verification, or the subject no longer exists. On success the resolved
// user (without credential material) is attached to the request context.
func AuthMiddleware(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.JSON(401, gin.H{"message": "Not authenticated"})
			c.Abort()
			return
		}

		userID, err := authService.ParseToken(token, services.TokenKindFull)
		if err != nil {
			c.JSON(401, gin.H{"message": "Invalid or expired token"})
			c.Abort()
			return
		}

		user, err := authService.GetUserByID(userID)
		if err != nil {
			c.JSON(401, gin.H{"message": "Invalid or expired token"})
			c.Abort()
			return
		}

		// Never expose credential material downstream
		user.PasswordHash = ""
		user.MFASecret = ""

		c.Set("user", user)
		c.Set("user_id", user.ID)

		c.Next()
	}
}

// RequireRole rejects with 403 unless the authenticated user's role is in
// the allow-list. Must run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := c.Get("user")
		if !exists {
			c.JSON(401, gin.H{"message": "Not authenticated"})
			c.Abort()
			return
		}

		userRole := user.(*models.User).Role
		hasRole := false
		for _, role := range roles {
			if userRole == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			c.JSON(403, gin.H{"message": "Forbidden: insufficient permissions"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentUser returns the authenticated user attached by AuthMiddleware
func CurrentUser(c *gin.Context) (*models.User, bool) {
	user, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	return user.(*models.User), true
}
