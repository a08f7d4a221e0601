package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"photoshare/backend/internal/database"
	"photoshare/backend/internal/models"
	"photoshare/backend/pkg/jwt"
	"photoshare/backend/pkg/logger"
)

// region --- DTOs ---

// RegisterInput defines the structure for user registration.
type RegisterInput struct {
	Email     string `json:"email" binding:"required,email" example:"test@example.com"`
	FirstName string `json:"first_name" binding:"required,max=100" example:"Jan"`
	LastName  string `json:"last_name" binding:"required,max=100" example:"Kowalski"`
	Password  string `json:"password" binding:"required,min=8" example:"password123"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Email    string `json:"email" binding:"required" example:"test@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// UserResponse defines the structure for a user's public profile.
type UserResponse struct {
	ID             uint   `json:"id" example:"1"`
	Email          string `json:"email" example:"test@example.com"`
	FirstName      string `json:"first_name" example:"Jan"`
	LastName       string `json:"last_name" example:"Kowalski"`
	ProfilePhoto   string `json:"profile_photo,omitempty"`
	Description    string `json:"description,omitempty"`
	Website        string `json:"website,omitempty"`
	FollowersCount int64  `json:"followers_count"`
	FollowingCount int64  `json:"following_count"`
}

// ProfileResponse is a user's public profile together with their posts.
type ProfileResponse struct {
	UserResponse
	Posts []PostResponse `json:"posts"`
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// endregion

// region --- Auth Handlers ---

// RegisterUser godoc
// @Summary      Register a new user
// @Description  Creates a new user and returns an authentication token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RegisterInput true "Registration Info"
// @Success      201  {object}  map[string]string "{"token": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Email already registered"
// @Failure      500  {object}  ErrorResponse
// @Router       /register [post]
func RegisterUser(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := models.NormalizeEmail(input.Email)

	var existingUser models.User
	if err := database.DB.Where("email = ?", email).First(&existingUser).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	user, err := models.NewUser(input.Email, input.FirstName, input.LastName, input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	if err := database.DB.Create(user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	// Registration logs the user straight in.
	token, err := jwt.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	logger.L.Info("user registered", zap.Uint("user_id", user.ID))
	c.JSON(http.StatusCreated, gin.H{"token": token})
}

// LoginUser godoc
// @Summary      Log in a user
// @Description  Authenticates a user with email and password, and returns a new token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  map[string]string "{"token": "..."}"
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Failure      404  {object}  ErrorResponse "User not found"
// @Failure      500  {object}  ErrorResponse "Internal server error"
// @Router       /login [post]
func LoginUser(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", models.NormalizeEmail(input.Email)).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if !user.CheckPassword(input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := jwt.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Index godoc
// @Summary      Landing page
// @Description  Redirects authenticated users to their feed; anonymous visitors get the landing payload.
// @Tags         users
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func Index(c *gin.Context) {
	if _, authenticated := c.Get("userID"); authenticated {
		c.Redirect(http.StatusFound, "/feed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to Photoshare. Register or log in to see your feed."})
}

// endregion

// region --- User Handlers ---

// SearchUsers godoc
// @Summary      Search for users
// @Description  Searches for users by email substring, case-insensitively. A missing phrase yields an empty result.
// @Tags         users
// @Produce      json
// @Param        q  query  string  false  "Search phrase matched against emails"
// @Success      200  {array}   UserResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /search [get]
func SearchUsers(c *gin.Context) {
	phrase := c.Query("q")

	// TODO: also match first and last name once the matching rules for
	// accented names are settled.
	users := []models.User{}
	if phrase != "" {
		err := database.DB.
			Where("LOWER(email) LIKE ?", "%"+strings.ToLower(phrase)+"%").
			Find(&users).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
			return
		}
	}

	userResponses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		userResponses = append(userResponses, buildUserResponse(user))
	}
	c.JSON(http.StatusOK, userResponses)
}

// GetUserProfile godoc
// @Summary      Get a user's profile
// @Description  Retrieves a user's public profile together with all of their posts, newest first.
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  ProfileResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "User not found"
// @Router       /user/{id} [get]
func GetUserProfile(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, uint(userID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var posts []models.Post
	err = database.DB.Where("user_id = ?", user.ID).
		Scopes(models.Newest).Preload("User").Find(&posts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posts"})
		return
	}

	postResponses := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		postResponses = append(postResponses, newPostResponse(post))
	}

	c.JSON(http.StatusOK, ProfileResponse{
		UserResponse: buildUserResponse(user),
		Posts:        postResponses,
	})
}

// GetMe godoc
// @Summary      Get current user's profile
// @Description  Retrieves the profile of the currently authenticated user.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  UserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [get]
func GetMe(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var user models.User
	if err := database.DB.First(&user, viewerID.(uint)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, buildUserResponse(user))
}

// endregion

// region --- Helpers ---

func buildUserResponse(user models.User) UserResponse {
	var followersCount, followingCount int64
	database.DB.Table("user_following").Where("following_id = ?", user.ID).Count(&followersCount)
	database.DB.Table("user_following").Where("user_id = ?", user.ID).Count(&followingCount)

	return UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		ProfilePhoto:   user.ProfilePhoto,
		Description:    user.Description,
		Website:        user.Website,
		FollowersCount: followersCount,
		FollowingCount: followingCount,
	}
}

// endregion
