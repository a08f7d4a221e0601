package main

import (
	"errors"

	"photoshare/backend/internal/auth"
	"photoshare/backend/internal/config"
	"photoshare/backend/internal/database"
	"photoshare/backend/internal/handler"
	"photoshare/backend/internal/models"
	"photoshare/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	// Swagger imports
	_ "photoshare/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Photoshare API
// @version         1.0
// @description     This is the API for the Photoshare service.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	database.Connect(config.AppConfig.DatabaseURL)
	seedSuperuser()

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Uploaded images are served by reference path under the media root.
	router.Static("/media", config.AppConfig.MediaRoot)

	// Public routes
	router.GET("/", auth.OptionalAuthMiddleware(), handler.Index)
	router.POST("/register", handler.RegisterUser)
	router.POST("/login", handler.LoginUser)
	router.GET("/search", handler.SearchUsers)
	router.GET("/user/:id", handler.GetUserProfile)
	router.GET("/post/:id", auth.OptionalAuthMiddleware(), handler.GetPost)

	// Routes requiring authentication
	authed := router.Group("")
	authed.Use(auth.AuthMiddleware())
	{
		authed.GET("/feed", handler.Feed)
		authed.GET("/users/me", handler.GetMe)

		authed.POST("/user/:id/follow", handler.FollowUser)
		authed.POST("/user/:id/unfollow", handler.UnfollowUser)

		authed.POST("/post", handler.CreatePost)
		authed.POST("/post/:id/edit", handler.UpdatePost)
		authed.POST("/post/:id/delete", handler.DeletePost)

		// State-changing reactions are POST-only so simple navigation
		// can never flip them.
		authed.POST("/post/:id/like", handler.LikePost)
		authed.POST("/post/:id/dislike", handler.DislikePost)

		authed.POST("/post/:id/comment", handler.CreateComment)
		authed.POST("/comment/:id/edit", handler.UpdateComment)
		authed.POST("/comment/:id/delete", handler.DeleteComment)
	}

	logger.L.Info("server starting", zap.String("addr", config.AppConfig.ServerAddr))
	if err := router.Run(config.AppConfig.ServerAddr); err != nil {
		logger.L.Fatal("server stopped", zap.Error(err))
	}
}

// seedSuperuser creates the configured superuser account once. It replaces
// an interactive createsuperuser step: set ADMIN_EMAIL and ADMIN_PASSWORD
// and the account exists on next boot.
func seedSuperuser() {
	email := config.AppConfig.AdminEmail
	password := config.AppConfig.AdminPassword
	if email == "" || password == "" {
		return
	}

	var existing models.User
	err := database.DB.Where("email = ?", models.NormalizeEmail(email)).First(&existing).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.L.Fatal("failed to look up superuser", zap.Error(err))
	}

	admin, err := models.NewSuperuser(email, "Admin", "Admin", password)
	if err != nil {
		logger.L.Fatal("failed to build superuser", zap.Error(err))
	}
	if err := database.DB.Create(admin).Error; err != nil {
		logger.L.Fatal("failed to create superuser", zap.Error(err))
	}
	logger.L.Info("superuser created", zap.String("email", admin.Email))
}
