package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"photoshare/backend/internal/auth"
	"photoshare/backend/internal/config"
	"photoshare/backend/internal/database"
	"photoshare/backend/internal/models"
	"photoshare/backend/pkg/jwt"
)

// setupTestDB points the global DB at a fresh in-memory sqlite database and
// wires a throwaway config. Single connection so every request sees the
// same memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	database.DB = db
	config.AppConfig = &config.Config{
		JWTSecret: "test-secret",
		MediaRoot: t.TempDir(),
	}
	return db
}

// newTestRouter mirrors the route table in cmd/server.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.GET("/", auth.OptionalAuthMiddleware(), Index)
	router.POST("/register", RegisterUser)
	router.POST("/login", LoginUser)
	router.GET("/search", SearchUsers)
	router.GET("/user/:id", GetUserProfile)
	router.GET("/post/:id", auth.OptionalAuthMiddleware(), GetPost)

	authed := router.Group("")
	authed.Use(auth.AuthMiddleware())
	{
		authed.GET("/feed", Feed)
		authed.GET("/users/me", GetMe)
		authed.POST("/user/:id/follow", FollowUser)
		authed.POST("/user/:id/unfollow", UnfollowUser)
		authed.POST("/post", CreatePost)
		authed.POST("/post/:id/edit", UpdatePost)
		authed.POST("/post/:id/delete", DeletePost)
		authed.POST("/post/:id/like", LikePost)
		authed.POST("/post/:id/dislike", DislikePost)
		authed.POST("/post/:id/comment", CreateComment)
		authed.POST("/comment/:id/edit", UpdateComment)
		authed.POST("/comment/:id/delete", DeleteComment)
	}
	return router
}

func createTestUser(t *testing.T, email string) *models.User {
	t.Helper()
	user, err := models.NewUser(email, "Test", "User", "password123")
	require.NoError(t, err)
	require.NoError(t, database.DB.Create(user).Error)
	return user
}

func createTestSuperuser(t *testing.T, email string) *models.User {
	t.Helper()
	user, err := models.NewSuperuser(email, "Super", "User", "password123")
	require.NoError(t, err)
	require.NoError(t, database.DB.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, author *models.User, content string) *models.Post {
	t.Helper()
	post := &models.Post{
		UserID:      author.ID,
		Content:     content,
		ImagePath:   "posts/test.png",
		ImageWidth:  1,
		ImageHeight: 1,
	}
	require.NoError(t, database.DB.Create(post).Error)
	return post
}

func follow(t *testing.T, follower, followee *models.User) {
	t.Helper()
	require.NoError(t, database.DB.Model(follower).Association("Following").Append(followee))
}

func authHeader(t *testing.T, userID uint) string {
	t.Helper()
	token, err := jwt.GenerateToken(userID)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(router *gin.Engine, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		buf, _ := json.Marshal(body)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// pngUpload builds a multipart body with a content field and a real 2x3
// PNG so the upload path exercises dimension probing.
func pngUpload(t *testing.T, content string) (*bytes.Buffer, string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, img))

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("content", content))
	part, err := writer.CreateFormFile("image", "photo.png")
	require.NoError(t, err)
	_, err = part.Write(pngBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

// fileUpload builds a multipart body with a content field and an arbitrary
// file payload, for exercising the not-an-image rejection.
func fileUpload(t *testing.T, content string, file []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("content", content))
	part, err := writer.CreateFormFile("image", "notes.txt")
	require.NoError(t, err)
	_, err = part.Write(file)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

// formUpload builds a multipart body carrying only text fields.
func formUpload(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func doMultipart(router *gin.Engine, method, path, bearer string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", contentType)
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func likeRowCount(t *testing.T, userID, postID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, database.DB.Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error)
	return count
}

func likeCountForPost(t *testing.T, postID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, database.DB.Model(&models.Like{}).Scopes(models.Liked).
		Where("post_id = ?", postID).Count(&count).Error)
	return count
}

func postPath(post *models.Post, suffix string) string {
	return fmt.Sprintf("/post/%d%s", post.ID, suffix)
}

func userPath(userID uint, suffix string) string {
	return fmt.Sprintf("/user/%d%s", userID, suffix)
}
