package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"photoshare/backend/internal/auth"
	"photoshare/backend/internal/database"
	"photoshare/backend/internal/models"
)

// CommentInput defines the structure for creating or editing a comment.
type CommentInput struct {
	Content string `json:"content" binding:"required,max=200" example:"Great shot!"`
}

// CommentResponse defines the structure for a comment on a post.
type CommentResponse struct {
	ID        uint           `json:"id" example:"1"`
	PostID    uint           `json:"post_id" example:"1"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Content   string         `json:"content"`
	Author    AuthorResponse `json:"author"`
}

func newCommentResponse(comment models.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		PostID:    comment.PostID,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
		Content:   comment.Content,
		Author:    newAuthorResponse(comment.User),
	}
}

// CreateComment godoc
// @Summary      Comment on a post
// @Description  Creates a comment on an existing post.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id     path  int           true  "Post ID"
// @Param        input  body  CommentInput  true  "Comment text"
// @Success      201  {object}  CommentResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /post/{id}/comment [post]
func CreateComment(c *gin.Context) {
	viewer, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, uint(postID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	comment := models.Comment{
		UserID:  viewer.ID,
		PostID:  post.ID,
		Content: input.Content,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	comment.User = *viewer
	c.JSON(http.StatusCreated, newCommentResponse(comment))
}

// UpdateComment godoc
// @Summary      Edit a comment
// @Description  Updates a comment's content. Only the author or a superuser may edit.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id     path  int           true  "Comment ID"
// @Param        input  body  CommentInput  true  "New comment text"
// @Success      200  {object}  CommentResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the author or a superuser"
// @Failure      404  {object}  ErrorResponse "Comment not found"
// @Router       /comment/{id}/edit [post]
func UpdateComment(c *gin.Context) {
	viewer, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var comment models.Comment
	if err := database.DB.Preload("User").First(&comment, uint(commentID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	if !auth.CanModify(viewer, comment) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author or a superuser may edit this comment"})
		return
	}

	if err := database.DB.Model(&comment).Update("content", input.Content).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment"})
		return
	}

	c.JSON(http.StatusOK, newCommentResponse(comment))
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Description  Deletes a comment. Only the author or a superuser may delete.
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Comment ID"
// @Success      200  {object}  map[string]string "{"message": "Comment deleted"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the author or a superuser"
// @Failure      404  {object}  ErrorResponse "Comment not found"
// @Router       /comment/{id}/delete [post]
func DeleteComment(c *gin.Context) {
	viewer, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	var comment models.Comment
	if err := database.DB.First(&comment, uint(commentID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	if !auth.CanModify(viewer, comment) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author or a superuser may delete this comment"})
		return
	}

	if err := database.DB.Delete(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
