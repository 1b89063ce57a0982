package services

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/finlit/backend/internal/models"
	"github.com/finlit/backend/internal/store"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setAuthTestConfig() {
	viper.Set("argon2.salt_length", 16)
	viper.Set("argon2.time", 1)
	viper.Set("argon2.memory", 64*1024)
	viper.Set("argon2.threads", 4)
	viper.Set("argon2.key_length", 32)
	viper.Set("jwt.secret_key", "test-secret")
	viper.Set("jwt.expiry_hours", 24)
}

func TestAuthService_Login(t *testing.T) {
	setAuthTestConfig()

	t.Run("existing user logs in", func(t *testing.T) {
		users := store.NewMemoryUserStore([]models.User{
			{ID: "1", Name: "Pragati", Email: "pragati@example.com"},
		})
		service := NewAuthService(users, nil)

		body, _ := json.Marshal(LoginRequest{Email: "pragati@example.com", Password: "anything"})
		r := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		service.Login(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		var response AuthResponse
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.NotEmpty(t, response.Token)
		assert.Equal(t, "1", response.User.ID)

		cookies := w.Result().Cookies()
		require.NotEmpty(t, cookies)
		assert.Equal(t, "sid", cookies[0].Name)
	})

	t.Run("unknown email creates the user", func(t *testing.T) {
		users := store.NewMemoryUserStore(nil)
		service := NewAuthService(users, nil)

		body, _ := json.Marshal(LoginRequest{Email: "new.user@example.com", Password: "pw"})
		r := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		service.Login(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		var response AuthResponse
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(t, "new.user", response.User.Name, "name comes from the email local part")

		created, err := users.FindByEmail("new.user@example.com")
		require.NoError(t, err)
		assert.NotEmpty(t, created.PasswordHash)
		assert.NotContains(t, created.PasswordHash, "pw")
	})

	t.Run("missing credentials", func(t *testing.T) {
		service := NewAuthService(store.NewMemoryUserStore(nil), nil)

		body := []byte(`{"email":"someone@example.com"}`)
		r := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		service.Login(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp ErrorResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, "Missing credentials", resp.Error)
	})

	t.Run("invalid request body", func(t *testing.T) {
		service := NewAuthService(store.NewMemoryUserStore(nil), nil)

		r := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBuffer([]byte("invalid")))
		w := httptest.NewRecorder()

		service.Login(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthService_Signup(t *testing.T) {
	setAuthTestConfig()

	t.Run("successful signup", func(t *testing.T) {
		users := store.NewMemoryUserStore(nil)
		service := NewAuthService(users, nil)

		body, _ := json.Marshal(SignupRequest{Name: "Asha", Email: "asha@example.com", Password: "password123"})
		r := httptest.NewRequest("POST", "/api/auth/signup", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		service.Signup(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		var response AuthResponse
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.NotEmpty(t, response.Token)
		assert.Equal(t, "Asha", response.User.Name)
		assert.Equal(t, 0, response.User.Points)
	})

	t.Run("missing fields", func(t *testing.T) {
		service := NewAuthService(store.NewMemoryUserStore(nil), nil)

		body := []byte(`{"name":"Asha","email":"asha@example.com"}`)
		r := httptest.NewRequest("POST", "/api/auth/signup", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		service.Signup(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp ErrorResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, "Missing fields", resp.Error)
	})
}

func TestAuthService_Profile(t *testing.T) {
	setAuthTestConfig()

	t.Run("get falls back to demo profile when empty", func(t *testing.T) {
		service := NewAuthService(store.NewMemoryUserStore(nil), nil)

		r := httptest.NewRequest("GET", "/api/profile", nil)
		w := httptest.NewRecorder()

		service.GetProfile(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp map[string]string
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, "Pragati", resp["username"])
	})

	t.Run("update renames the first user", func(t *testing.T) {
		users := store.NewMemoryUserStore([]models.User{
			{ID: "1", Name: "Pragati", Email: "pragati@example.com"},
		})
		service := NewAuthService(users, nil)

		body := []byte(`{"username":"Pragati S","email":"pragati.s@example.com"}`)
		r := httptest.NewRequest("PUT", "/api/profile", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		service.UpdateProfile(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		updated, _ := users.Get("1")
		assert.Equal(t, "Pragati S", updated.Name)
		assert.Equal(t, "pragati.s@example.com", updated.Email)
	})

	t.Run("update with missing fields", func(t *testing.T) {
		service := NewAuthService(store.NewMemoryUserStore(nil), nil)

		body := []byte(`{"username":"OnlyName"}`)
		r := httptest.NewRequest("PUT", "/api/profile", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		service.UpdateProfile(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("password update always succeeds and stores a hash", func(t *testing.T) {
		users := store.NewMemoryUserStore([]models.User{{ID: "1", Name: "Pragati"}})
		service := NewAuthService(users, nil)

		body := []byte(`{"currentPassword":"whatever","newPassword":"next"}`)
		r := httptest.NewRequest("PUT", "/api/profile/password", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		service.UpdatePassword(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		user, _ := users.Get("1")
		assert.NotEmpty(t, user.PasswordHash)
		assert.True(t, strings.Contains(user.PasswordHash, "$"))
	})
}

func TestPasswordHashing(t *testing.T) {
	setAuthTestConfig()

	hashed, err := hashPassword("testpassword")
	assert.NoError(t, err)
	assert.NotEmpty(t, hashed)

	again, err := hashPassword("testpassword")
	assert.NoError(t, err)
	assert.NotEqual(t, hashed, again, "salts must differ per hash")
}

func TestGenerateJWT(t *testing.T) {
	setAuthTestConfig()

	token, err := generateJWT("user-123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
}
