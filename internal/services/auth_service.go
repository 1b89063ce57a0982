package services

import (
	"context"
	cryptorand "crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/finlit/backend/internal/models"
	"github.com/finlit/backend/internal/store"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"golang.org/x/crypto/argon2"
)

// AuthService implements the demo login flow: login finds or creates the
// user by email, signup always creates, and passwords are hashed and stored
// but never checked. Real credential verification is out of scope.
type AuthService struct {
	users     store.UserStore
	redis     *redis.Client
	validator *ValidationHelper
}

// LoginRequest represents the login request payload
// @Description Login request structure
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"pragati@example.com"` // User email
	Password string `json:"password" validate:"required" example:"password123"`            // User password
}

// SignupRequest represents the signup request payload
// @Description Signup request structure
type SignupRequest struct {
	Name     string `json:"name" validate:"required" example:"Pragati"`                    // Display name
	Email    string `json:"email" validate:"required,email" example:"pragati@example.com"` // User email
	Password string `json:"password" validate:"required" example:"password123"`            // User password
}

// AuthResponse represents the authentication response
// @Description Authentication response structure
type AuthResponse struct {
	Token string      `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."` // JWT token
	User  models.User `json:"user"`                                                    // User information
}

func NewAuthService(users store.UserStore, redisClient *redis.Client) *AuthService {
	return &AuthService{
		users:     users,
		redis:     redisClient,
		validator: NewValidationHelper(),
	}
}

// Login authenticates (or creates) a user by email
// @Summary Login user
// @Description Find or create a user by email and issue a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login request"
// @Success 200 {object} AuthResponse "Login successful"
// @Failure 400 {object} ErrorResponse "Missing credentials"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (s *AuthService) Login(w http.ResponseWriter, r *http.Request) {
	log.Printf("[AUTH] Login attempt from IP: %s", r.RemoteAddr)

	req, ok := decodeAuthBody[LoginRequest](w, r)
	if !ok {
		return
	}

	if req.Email == "" || req.Password == "" {
		SendErrorResponse(w, "Missing credentials", http.StatusBadRequest, nil)
		return
	}

	if err := s.validator.ValidateStruct(&req); err != nil {
		log.Printf("[AUTH] Login validation failed: %v", err)
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	user, err := s.users.FindByEmail(req.Email)
	if errors.Is(err, store.ErrUserNotFound) {
		user, err = s.createUser(localPart(req.Email), req.Email, req.Password)
	}
	if err != nil {
		log.Printf("[AUTH] Login failed for %s: %v", req.Email, err)
		SendErrorResponse(w, "Failed to log in", http.StatusInternalServerError, nil)
		return
	}

	s.issueSession(w, user)
}

// Signup creates a new user account
// @Summary Sign up
// @Description Create a user with name, email, and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup request"
// @Success 200 {object} AuthResponse "Signup successful"
// @Failure 400 {object} ErrorResponse "Missing fields"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /auth/signup [post]
func (s *AuthService) Signup(w http.ResponseWriter, r *http.Request) {
	log.Printf("[AUTH] Signup attempt from IP: %s", r.RemoteAddr)

	req, ok := decodeAuthBody[SignupRequest](w, r)
	if !ok {
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		SendErrorResponse(w, "Missing fields", http.StatusBadRequest, nil)
		return
	}

	if err := s.validator.ValidateStruct(&req); err != nil {
		log.Printf("[AUTH] Signup validation failed: %v", err)
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	user, err := s.createUser(req.Name, req.Email, req.Password)
	if err != nil {
		log.Printf("[AUTH] Signup failed for %s: %v", req.Email, err)
		SendErrorResponse(w, "Failed to create user", http.StatusInternalServerError, nil)
		return
	}

	s.issueSession(w, user)
}

// Logout blacklists the current token
// @Summary Logout user
// @Description Logout user and blacklist token
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string "Logout successful"
// @Router /auth/logout [post]
func (s *AuthService) Logout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("Authorization")
	if token != "" && len(token) > 7 {
		token = token[7:] // Remove "Bearer " prefix

		if s.redis != nil {
			ctx := context.Background()
			key := fmt.Sprintf("blacklist:%s", token)
			// Blacklist token until its expiration
			expiry := time.Duration(viper.GetInt("jwt.expiry_hours")) * time.Hour
			if err := s.redis.Set(ctx, key, "1", expiry).Err(); err != nil {
				log.Printf("[AUTH] Failed to blacklist token: %v", err)
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Logout successful"})
}

// GetProfile returns the current profile
// @Summary Get profile
// @Description Get the demo user's profile
// @Tags profile
// @Produce json
// @Success 200 {object} map[string]string "Profile"
// @Router /profile [get]
func (s *AuthService) GetProfile(w http.ResponseWriter, r *http.Request) {
	username, email := "Pragati", "pragati@example.com"
	if user, err := s.users.First(); err == nil {
		username, email = user.Name, user.Email
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"username": username,
		"email":    email,
	})
}

// UpdateProfile updates the current profile
// @Summary Update profile
// @Description Update the demo user's name and email
// @Tags profile
// @Accept json
// @Produce json
// @Param request body map[string]string true "Profile update"
// @Success 200 {object} map[string]interface{} "Updated profile"
// @Failure 400 {object} ErrorResponse "Missing fields"
// @Router /profile [put]
func (s *AuthService) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendErrorResponse(w, "Invalid request", http.StatusBadRequest, nil)
		return
	}

	if req.Username == "" || req.Email == "" {
		SendErrorResponse(w, "Missing fields", http.StatusBadRequest, nil)
		return
	}

	current, err := s.users.First()
	if errors.Is(err, store.ErrUserNotFound) {
		current, err = s.createUser(req.Username, req.Email, "")
	}
	if err != nil {
		log.Printf("[AUTH] Profile update failed: %v", err)
		SendErrorResponse(w, "Failed to update profile", http.StatusInternalServerError, nil)
		return
	}

	user, err := s.users.Update(current.ID, func(u *models.User) {
		u.Name = req.Username
		u.Email = req.Email
		u.UpdatedAt = time.Now()
	})
	if err != nil {
		log.Printf("[AUTH] Profile update failed for user %s: %v", current.ID, err)
		SendErrorResponse(w, "Failed to update profile", http.StatusInternalServerError, nil)
		return
	}

	log.Printf("[AUTH] Profile updated for user %s", user.ID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"success": true, "user": user})
}

// UpdatePassword stores a new password hash
// @Summary Update password
// @Description Replace the demo user's stored password hash; never verified
// @Tags profile
// @Accept json
// @Produce json
// @Param request body map[string]string true "Password update"
// @Success 200 {object} map[string]interface{} "Password updated"
// @Router /profile/password [put]
func (s *AuthService) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendErrorResponse(w, "Invalid request", http.StatusBadRequest, nil)
		return
	}

	// Demo scope: the hash is stored but never checked against.
	if user, err := s.users.First(); err == nil && req.NewPassword != "" {
		if hash, err := hashPassword(req.NewPassword); err == nil {
			s.users.Update(user.ID, func(u *models.User) {
				u.PasswordHash = hash
				u.UpdatedAt = time.Now()
			})
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "Password updated (demo)"})
}

func (s *AuthService) createUser(name, email, password string) (models.User, error) {
	hash := ""
	if password != "" {
		var err error
		if hash, err = hashPassword(password); err != nil {
			return models.User{}, err
		}
	}

	now := time.Now()
	user := models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Points:       0,
		Balance:      decimal.Zero,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Add(user); err != nil {
		return models.User{}, err
	}

	log.Printf("[AUTH] Created user %s (%s)", user.ID, user.Email)
	return user, nil
}

func (s *AuthService) issueSession(w http.ResponseWriter, user models.User) {
	token, err := generateJWT(user.ID)
	if err != nil {
		log.Printf("[AUTH] JWT generation failed for user %s: %v", user.ID, err)
		SendErrorResponse(w, "Failed to generate token", http.StatusInternalServerError, nil)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "sid",
		Value:    "demo-session",
		Path:     "/",
		HttpOnly: true,
	})

	log.Printf("[AUTH] Session issued for user %s", user.ID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AuthResponse{Token: token, User: user})
}

func decodeAuthBody[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var req T

	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		log.Printf("[AUTH] Invalid request body: %v", err)
		SendErrorResponse(w, "Invalid request", http.StatusBadRequest, nil)
		return req, false
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		log.Printf("[AUTH] Multiple JSON objects detected")
		SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return req, false
	}

	return req, true
}

func localPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}

func generateJWT(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"nameid":  userID,
		"exp":     time.Now().Add(time.Duration(viper.GetInt("jwt.expiry_hours")) * time.Hour).Unix(),
	})

	return token.SignedString([]byte(viper.GetString("jwt.secret_key")))
}

func hashPassword(password string) (string, error) {
	salt := make([]byte, viper.GetInt("argon2.salt_length"))
	if _, err := cryptorand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt,
		uint32(viper.GetInt("argon2.time")),
		uint32(viper.GetInt("argon2.memory")),
		uint8(viper.GetInt("argon2.threads")),
		uint32(viper.GetInt("argon2.key_length")))
	return fmt.Sprintf("%s$%s", base64.StdEncoding.EncodeToString(salt), base64.StdEncoding.EncodeToString(hash)), nil
}
