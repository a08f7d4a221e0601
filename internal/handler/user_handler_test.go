package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photoshare/backend/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()

	w := doJSON(router, http.MethodPost, "/register", "", RegisterInput{
		Email:     "Jan.Kowalski@Example.COM",
		FirstName: "Jan",
		LastName:  "Kowalski",
		Password:  "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["token"])

	// Registering the same email again conflicts, regardless of domain case.
	w = doJSON(router, http.MethodPost, "/register", "", RegisterInput{
		Email:     "Jan.Kowalski@example.com",
		FirstName: "Jan",
		LastName:  "Kowalski",
		Password:  "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Login with the stored credentials.
	w = doJSON(router, http.MethodPost, "/login", "", LoginInput{
		Email:    "Jan.Kowalski@example.com",
		Password: "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// Wrong password is rejected.
	w = doJSON(router, http.MethodPost, "/login", "", LoginInput{
		Email:    "Jan.Kowalski@example.com",
		Password: "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()

	// Short password.
	w := doJSON(router, http.MethodPost, "/register", "", RegisterInput{
		Email:     "jan@example.com",
		FirstName: "Jan",
		LastName:  "Kowalski",
		Password:  "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Not an email.
	w = doJSON(router, http.MethodPost, "/register", "", RegisterInput{
		Email:     "not-an-email",
		FirstName: "Jan",
		LastName:  "Kowalski",
		Password:  "password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchUsersByEmailSubstring(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()

	createTestUser(t, "alice@example.com")
	createTestUser(t, "bob@other.net")

	w := doJSON(router, http.MethodGet, "/search?q=ALICE", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users []UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "alice@example.com", users[0].Email)

	// Substring match inside the domain.
	w = doJSON(router, http.MethodGet, "/search?q=other", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "bob@other.net", users[0].Email)

	// Missing phrase yields an empty list, not an error.
	w = doJSON(router, http.MethodGet, "/search", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	assert.Empty(t, users)
}

func TestUserProfileWithPosts(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()

	alice := createTestUser(t, "alice@example.com")
	bob := createTestUser(t, "bob@example.com")
	follow(t, bob, alice)
	createTestPost(t, alice, "pic one")
	createTestPost(t, alice, "pic two")

	w := doJSON(router, http.MethodGet, userPath(alice.ID, ""), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var profile ProfileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, alice.ID, profile.ID)
	assert.Len(t, profile.Posts, 2)
	assert.EqualValues(t, 1, profile.FollowersCount)
	assert.EqualValues(t, 0, profile.FollowingCount)
	for _, post := range profile.Posts {
		assert.Equal(t, alice.ID, post.Author.ID)
	}
}

func TestUserProfileNotFound(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()

	w := doJSON(router, http.MethodGet, "/user/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIndexRedirectsAuthenticated(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()

	alice := createTestUser(t, "alice@example.com")

	w := doJSON(router, http.MethodGet, "/", authHeader(t, alice.ID), nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/feed", w.Header().Get("Location"))

	w = doJSON(router, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetMe(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()

	alice := createTestUser(t, "alice@example.com")

	w := doJSON(router, http.MethodGet, "/users/me", authHeader(t, alice.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var me UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, alice.ID, me.ID)
	assert.Equal(t, models.NormalizeEmail("alice@example.com"), me.Email)

	w = doJSON(router, http.MethodGet, "/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
