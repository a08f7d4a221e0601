package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"photoshare/backend/internal/database"
	"photoshare/backend/internal/models"
)

// FollowUser godoc
// @Summary      Follow a user
// @Description  Adds the target to the requester's following set. Following is asymmetric and idempotent.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Target User ID"
// @Success      200  {object}  map[string]bool "{"following": true}"
// @Failure      400  {object}  ErrorResponse "Cannot follow yourself"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /user/{id}/follow [post]
func FollowUser(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}
	if viewerID.(uint) == uint(targetID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot follow yourself"})
		return
	}

	var target models.User
	if err := database.DB.First(&target, uint(targetID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var viewer models.User
	if err := database.DB.First(&viewer, viewerID.(uint)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Authenticated user not found"})
		return
	}

	if err := database.DB.Model(&viewer).Association("Following").Append(&target); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": true})
}

// UnfollowUser godoc
// @Summary      Unfollow a user
// @Description  Removes the target from the requester's following set. Idempotent.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Target User ID"
// @Success      200  {object}  map[string]bool "{"following": false}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /user/{id}/unfollow [post]
func UnfollowUser(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var target models.User
	if err := database.DB.First(&target, uint(targetID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var viewer models.User
	if err := database.DB.First(&viewer, viewerID.(uint)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Authenticated user not found"})
		return
	}

	if err := database.DB.Model(&viewer).Association("Following").Delete(&target); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": false})
}
