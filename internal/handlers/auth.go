package handlers

import (
	"net/http"

	"photo-sharing-backend/internal/auth"
	"photo-sharing-backend/internal/middleware"
	"photo-sharing-backend/internal/models"
	"photo-sharing-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// LoginResponse is returned by POST /admin/login. Token is empty under the
// session strategy, which sets a cookie instead.
type LoginResponse struct {
	Token string             `json:"token,omitempty"`
	User  models.UserSummary `json:"user"`
}

// AuthHandler handles login and logout
type AuthHandler struct {
	userService *services.UserService
	strategy    auth.Strategy
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService *services.UserService, strategy auth.Strategy) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		strategy:    strategy,
	}
}

// Login handles POST /admin/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err, "Login failed")
		return
	}

	token, err := h.strategy.Issue(w, r, user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to issue credentials")
		respondError(w, "Server error", http.StatusInternalServerError)
		return
	}

	log.Info().Str("user_id", user.ID).Msg("User logged in")

	respondJSON(w, http.StatusOK, LoginResponse{
		Token: token,
		User:  user.Summary(),
	})
}

// Logout handles POST /admin/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if err := h.strategy.Revoke(w, r); err != nil {
		respondServiceError(w, r, err, "Logout failed")
		return
	}

	log.Info().Str("user_id", userID).Msg("User logged out")
	respondJSON(w, http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}
