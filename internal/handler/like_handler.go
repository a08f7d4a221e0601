package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"photoshare/backend/internal/database"
	"photoshare/backend/internal/models"
)

// LikePost godoc
// @Summary      Like a post
// @Description  Idempotent upsert of the requester's reaction: creates a like row (201) or flips an existing row to like (200).
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Post ID"
// @Success      200  {object}  map[string]string "existing reaction set to like"
// @Success      201  {object}  map[string]string "like created"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /post/{id}/like [post]
func LikePost(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, uint(postID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var like models.Like
	err = database.DB.Where("user_id = ? AND post_id = ?", viewerID, post.ID).First(&like).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		like = models.Like{UserID: viewerID.(uint), PostID: post.ID, Like: true}
		err = database.DB.Create(&like).Error
		if err == nil {
			c.JSON(http.StatusCreated, gin.H{"message": "Like created"})
			return
		}
		// A concurrent like won the insert; the unique constraint on
		// (user, post) turns ours into a plain update.
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like post"})
			return
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like post"})
		return
	}

	err = database.DB.Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", viewerID, post.ID).
		Update("like", true).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Like updated"})
}

// DislikePost godoc
// @Summary      Dislike a post
// @Description  Flips the requester's existing reaction to dislike. Fails when the post was never liked or disliked.
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Post ID"
// @Success      200  {object}  map[string]string "reaction set to dislike"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Post or prior reaction not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /post/{id}/dislike [post]
func DislikePost(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, uint(postID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	// Disliking requires a prior reaction row; it never creates one.
	var like models.Like
	err = database.DB.Where("user_id = ? AND post_id = ?", viewerID, post.ID).First(&like).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No reaction to dislike"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to dislike post"})
		return
	}

	if err := database.DB.Model(&like).Update("like", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to dislike post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dislike updated"})
}
