package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tradegate/backend/internal/domain/identity"
	"github.com/tradegate/backend/internal/domain/shared"
)

// CurrentUserKey is the context key holding the authenticated user entity
const CurrentUserKey = "current_user"

// UserLoader loads the authenticated user from the database and stores it
// in the request context. Must run after JWTAuthMiddleware.
func UserLoader(userRepo identity.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDStr := GetJWTUserID(c)
		if userIDStr == "" {
			abortUnauthorized(c, "Authentication required")
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			abortUnauthorized(c, "Invalid user ID in token")
			return
		}

		user, err := userRepo.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				abortUnauthorized(c, "User no longer exists")
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   gin.H{"code": "INTERNAL_ERROR", "message": "Failed to load user"},
			})
			return
		}

		if !user.IsActive {
			abortUnauthorized(c, "Account has been deactivated")
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// AdminRequired rejects requests from users without administrative access.
// Must run after UserLoader.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetCurrentUser(c)
		if user == nil {
			abortUnauthorized(c, "Authentication required")
			return
		}
		if !user.CanAdminister() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   gin.H{"code": "FORBIDDEN", "message": "Administrator access required"},
			})
			return
		}
		c.Next()
	}
}

// GetCurrentUser retrieves the authenticated user entity from gin.Context
func GetCurrentUser(c *gin.Context) *identity.User {
	if value, exists := c.Get(CurrentUserKey); exists {
		if user, ok := value.(*identity.User); ok {
			return user
		}
	}
	return nil
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   gin.H{"code": "UNAUTHORIZED", "message": message},
	})
}
