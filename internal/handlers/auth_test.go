// internal/handlers/auth_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dzfactories/backend/internal/config"
	"github.com/dzfactories/backend/internal/models"
	"github.com/dzfactories/backend/internal/utils"
)

func authTestRouter(store *fakeStore, cfg *config.Config) *gin.Engine {
	h := NewAuthHandler(store, cfg)

	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	r.GET("/api/auth/user", func(c *gin.Context) {
		// Stand-in for the auth middleware
		if id := c.GetHeader("X-Test-User"); id != "" {
			c.Set("user_id", id)
		}
		h.Profile(c)
	})
	return r
}

func authTestConfig() *config.Config {
	return &config.Config{
		Admin: config.AdminConfig{Emails: []string{"admin@example.com"}},
		JWT:   config.JWTConfig{AccessTokenTTL: 1},
	}
}

func seedUser(t *testing.T, store *fakeStore, email, password string) models.User {
	t.Helper()
	now := time.Now().UTC()
	user := &models.User{
		ID:        uuid.New().String(),
		Email:     email,
		Role:      models.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, user.SetPassword(password))
	_, err := store.CreateUser(context.Background(), user)
	require.NoError(t, err)
	return *user
}

func TestRegister(t *testing.T) {
	t.Run("creates the account", func(t *testing.T) {
		store := newFakeStore()
		r := authTestRouter(store, authTestConfig())

		w := postJSON(r, http.MethodPost, "/api/auth/register", map[string]string{
			"email":    "Amine@Example.com",
			"password": "s3cret-passw0rd",
			"name":     "Amine",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "success", resp["status"])
		assert.NotEmpty(t, resp["message"])

		// Email is stored lowercased
		user, err := store.GetUserByEmail(context.Background(), "amine@example.com")
		require.NoError(t, err)
		assert.Equal(t, "amine@example.com", user.Email)
		assert.NoError(t, user.CheckPassword("s3cret-passw0rd"))
		assert.Equal(t, models.RoleUser, user.Role)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		store := newFakeStore()
		seedUser(t, store, "amine@example.com", "s3cret-passw0rd")
		r := authTestRouter(store, authTestConfig())

		w := postJSON(r, http.MethodPost, "/api/auth/register", map[string]string{
			"email":    "amine@example.com",
			"password": "another-passw0rd",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("short password is rejected", func(t *testing.T) {
		store := newFakeStore()
		r := authTestRouter(store, authTestConfig())

		w := postJSON(r, http.MethodPost, "/api/auth/register", map[string]string{
			"email":    "amine@example.com",
			"password": "short",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogin(t *testing.T) {
	utils.SetJWTSecret("handler-test-secret")

	t.Run("valid credentials return a token and the user", func(t *testing.T) {
		store := newFakeStore()
		seedUser(t, store, "amine@example.com", "s3cret-passw0rd")
		r := authTestRouter(store, authTestConfig())

		w := postJSON(r, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "amine@example.com",
			"password": "s3cret-passw0rd",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Status string      `json:"status"`
			Token  string      `json:"token"`
			User   models.User `json:"user"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "success", resp.Status)
		assert.Equal(t, "amine@example.com", resp.User.Email)

		claims, err := utils.ValidateJWT(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "amine@example.com", claims.Email)
		assert.Equal(t, "user", claims.Role)
	})

	t.Run("allow-listed email gets the admin role claim", func(t *testing.T) {
		store := newFakeStore()
		seedUser(t, store, "admin@example.com", "s3cret-passw0rd")
		r := authTestRouter(store, authTestConfig())

		w := postJSON(r, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "admin@example.com",
			"password": "s3cret-passw0rd",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		claims, err := utils.ValidateJWT(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("wrong password is 401", func(t *testing.T) {
		store := newFakeStore()
		seedUser(t, store, "amine@example.com", "s3cret-passw0rd")
		r := authTestRouter(store, authTestConfig())

		w := postJSON(r, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "amine@example.com",
			"password": "wrong-passw0rd",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown email is 401 with the same body shape", func(t *testing.T) {
		store := newFakeStore()
		r := authTestRouter(store, authTestConfig())

		w := postJSON(r, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "ghost@example.com",
			"password": "whatever-passw0rd",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("password hash never leaks in the response", func(t *testing.T) {
		store := newFakeStore()
		seedUser(t, store, "amine@example.com", "s3cret-passw0rd")
		r := authTestRouter(store, authTestConfig())

		w := postJSON(r, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "amine@example.com",
			"password": "s3cret-passw0rd",
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "passwordHash")
		assert.NotContains(t, w.Body.String(), "$2a$")
	})
}

func TestProfile(t *testing.T) {
	store := newFakeStore()
	user := seedUser(t, store, "amine@example.com", "s3cret-passw0rd")
	r := authTestRouter(store, authTestConfig())

	t.Run("returns the stored user", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
		req.Header.Set("X-Test-User", user.ID)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Status string      `json:"status"`
			User   models.User `json:"user"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "success", resp.Status)
		assert.Equal(t, user.ID, resp.User.ID)
	})

	t.Run("identity without a backing record is 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
		req.Header.Set("X-Test-User", "deleted-user")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("no identity is 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/user", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestUpdateProfile(t *testing.T) {
	store := newFakeStore()
	user := seedUser(t, store, "amine@example.com", "s3cret-passw0rd")

	h := NewAuthHandler(store, authTestConfig())
	r := gin.New()
	r.PATCH("/api/auth/user", func(c *gin.Context) {
		if id := c.GetHeader("X-Test-User"); id != "" {
			c.Set("user_id", id)
		}
		h.UpdateProfile(c)
	})

	t.Run("updates only the sent fields", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"name": "Amine B."})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/api/auth/user", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Test-User", user.ID)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		stored, err := store.GetUser(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Amine B.", stored.Name)
		assert.Equal(t, "amine@example.com", stored.Email)
	})

	t.Run("invalid picture url is rejected", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"picture": "not a url"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/api/auth/user", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Test-User", user.ID)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("no identity is 401", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"name": "X"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/api/auth/user", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
