package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"photoshare/backend/internal/auth"
	"photoshare/backend/internal/config"
	"photoshare/backend/internal/database"
	"photoshare/backend/internal/models"
	"photoshare/backend/internal/storage"
	"photoshare/backend/pkg/logger"
)

const maxPostContentLen = 400

// region --- DTOs ---

// AuthorResponse identifies a post's or comment's author.
type AuthorResponse struct {
	ID       uint   `json:"id" example:"1"`
	Email    string `json:"email" example:"test@example.com"`
	FullName string `json:"full_name" example:"Jan Kowalski"`
}

// PostResponse defines the structure for a post in lists and profiles.
type PostResponse struct {
	ID          uint           `json:"id" example:"1"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Content     string         `json:"content"`
	ImagePath   string         `json:"image_path"`
	ImageWidth  int            `json:"image_width"`
	ImageHeight int            `json:"image_height"`
	Author      AuthorResponse `json:"author"`
}

// PostDetailResponse adds the like aggregate and comments to a post.
type PostDetailResponse struct {
	PostResponse
	LikeCount   int64             `json:"like_count"`
	LikedByUser bool              `json:"liked_by_user"`
	Comments    []CommentResponse `json:"comments"`
}

func newAuthorResponse(user models.User) AuthorResponse {
	return AuthorResponse{ID: user.ID, Email: user.Email, FullName: user.FullName()}
}

func newPostResponse(post models.Post) PostResponse {
	return PostResponse{
		ID:          post.ID,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
		Content:     post.Content,
		ImagePath:   post.ImagePath,
		ImageWidth:  post.ImageWidth,
		ImageHeight: post.ImageHeight,
		Author:      newAuthorResponse(post.User),
	}
}

// endregion

// region --- Read Handlers ---

// Feed godoc
// @Summary      Personal feed
// @Description  Lists posts authored by the users the requester follows, newest first.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page number" default(1)
// @Param        limit query     int  false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[PostResponse]
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /feed [get]
func Feed(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	page, limit := pageParams(c)

	following := database.DB.Table("user_following").
		Select("following_id").Where("user_id = ?", viewerID)

	query := database.DB.Model(&models.Post{}).Where("user_id IN (?)", following)
	posts, totalItems, err := paginatePosts(query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve feed"})
		return
	}

	postResponses := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		postResponses = append(postResponses, newPostResponse(post))
	}
	c.JSON(http.StatusOK, NewPaginatedResponse(postResponses, totalItems, page, limit))
}

// GetPost godoc
// @Summary      Post detail
// @Description  Retrieves a post with its author, like count, whether the requester liked it, and its comments.
// @Tags         posts
// @Produce      json
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  PostDetailResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Router       /post/{id} [get]
func GetPost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var post models.Post
	if err := database.DB.Preload("User").First(&post, uint(postID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	// The count only considers flag-true rows; dislikes never contribute.
	var likeCount int64
	database.DB.Model(&models.Like{}).Scopes(models.Liked).
		Where("post_id = ?", post.ID).Count(&likeCount)

	likedByUser := false
	if viewerID, authenticated := c.Get("userID"); authenticated {
		var liked int64
		database.DB.Model(&models.Like{}).Scopes(models.Liked).
			Where("post_id = ? AND user_id = ?", post.ID, viewerID).Count(&liked)
		likedByUser = liked > 0
	}

	var comments []models.Comment
	err = database.DB.Preload("User").Where("post_id = ?", post.ID).
		Order("created_at DESC").Find(&comments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comments"})
		return
	}

	commentResponses := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		commentResponses = append(commentResponses, newCommentResponse(comment))
	}

	c.JSON(http.StatusOK, PostDetailResponse{
		PostResponse: newPostResponse(post),
		LikeCount:    likeCount,
		LikedByUser:  likedByUser,
		Comments:     commentResponses,
	})
}

// endregion

// region --- Mutation Handlers ---

// CreatePost godoc
// @Summary      Create a post
// @Description  Creates a post from a multipart form with a text content field and an image file.
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        content  formData  string  true  "Post text, up to 400 characters"
// @Param        image    formData  file    true  "Image file (jpeg, png, gif or webp)"
// @Success      201  {object}  PostResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /post [post]
func CreatePost(c *gin.Context) {
	viewer, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	content := c.PostForm("content")
	if content == "" || len(content) > maxPostContentLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required and limited to 400 characters"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}

	saved, err := storage.SaveImage(fileHeader, config.AppConfig.MediaRoot, "posts")
	if errors.Is(err, storage.ErrNotAnImage) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Uploaded file is not a supported image"})
		return
	}
	if err != nil {
		logger.L.Error("failed to store upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}

	post := models.Post{
		UserID:      viewer.ID,
		Content:     content,
		ImagePath:   saved.Path,
		ImageWidth:  saved.Width,
		ImageHeight: saved.Height,
	}
	if err := database.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	post.User = *viewer
	c.JSON(http.StatusCreated, newPostResponse(post))
}

// UpdatePost godoc
// @Summary      Edit a post
// @Description  Updates a post's content and/or image. Only the author or a superuser may edit.
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int     true   "Post ID"
// @Param        content  formData  string  false  "New post text"
// @Param        image    formData  file    false  "Replacement image"
// @Success      200  {object}  PostResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the author or a superuser"
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Router       /post/{id}/edit [post]
func UpdatePost(c *gin.Context) {
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

	var post models.Post
	if err := database.DB.Preload("User").First(&post, uint(postID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if !auth.CanModify(viewer, post) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author or a superuser may edit this post"})
		return
	}

	updates := map[string]interface{}{}
	if content := c.PostForm("content"); content != "" {
		if len(content) > maxPostContentLen {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Content is limited to 400 characters"})
			return
		}
		updates["content"] = content
	}

	if fileHeader, err := c.FormFile("image"); err == nil {
		saved, err := storage.SaveImage(fileHeader, config.AppConfig.MediaRoot, "posts")
		if errors.Is(err, storage.ErrNotAnImage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Uploaded file is not a supported image"})
			return
		}
		if err != nil {
			logger.L.Error("failed to store upload", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
			return
		}
		updates["image_path"] = saved.Path
		updates["image_width"] = saved.Width
		updates["image_height"] = saved.Height
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&post).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
			return
		}
	}

	c.JSON(http.StatusOK, newPostResponse(post))
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Deletes a post with its comments and likes. Only the author or a superuser may delete.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  map[string]string "{"message": "Post deleted"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the author or a superuser"
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Router       /post/{id}/delete [post]
func DeletePost(c *gin.Context) {
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

	var post models.Post
	if err := database.DB.First(&post, uint(postID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if !auth.CanModify(viewer, post) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author or a superuser may delete this post"})
		return
	}

	// Comments and likes go with the post. The storage constraints say the
	// same, but doing it in one transaction keeps the behavior identical
	// on engines where the cascade pragma is off.
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// endregion
