package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NguyenTrongThuan612/restaurant-management/models"
	"github.com/NguyenTrongThuan612/restaurant-management/utils"
)

const (
	ContextUser     = "currentUser"
	ContextUserID   = "userId"
	ContextUserRole = "userRole"
)

// AuthMiddleware resolves the bearer token to a user and rejects any account
// that is not activated.
func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			utils.AbortWith(c, http.StatusUnauthorized, "Authorization header missing")
			return
		}

		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			utils.AbortWith(c, http.StatusUnauthorized, "Invalid Authorization header")
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			utils.AbortWith(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			utils.AbortWith(c, http.StatusUnauthorized, "Account no longer exists")
			return
		}

		if user.Status != models.UserStatusActivated {
			utils.AbortWith(c, http.StatusForbidden, "Account is not activated")
			return
		}

		c.Set(ContextUser, &user)
		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserRole, user.Role)
		c.Next()
	}
}

func ManagerOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserRole) != models.UserRoleManager {
			utils.AbortWith(c, http.StatusForbidden, "Managers only")
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user placed by AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	raw, exists := c.Get(ContextUser)
	if !exists {
		return nil, false
	}
	user, ok := raw.(*models.User)
	return user, ok
}
