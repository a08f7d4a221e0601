package auth

import (
	"github.com/gin-gonic/gin"

	"photoshare/backend/internal/database"
	"photoshare/backend/internal/models"
)

// CanModify is the guard applied before any post or comment mutation: the
// actor may modify the target if and only if they own it or are a superuser.
func CanModify(actor *models.User, target models.Ownable) bool {
	return actor.IsSuperuser || target.OwnerID() == actor.ID
}

// CurrentUser loads the authenticated user set by AuthMiddleware. The
// second return is false when the context carries no valid user, which can
// happen if the account was removed after the token was issued.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		return nil, false
	}

	var user models.User
	if err := database.DB.First(&user, userID.(uint)).Error; err != nil {
		return nil, false
	}
	return &user, true
}
