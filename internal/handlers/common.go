package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"photo-sharing-backend/internal/auth"
	"photo-sharing-backend/internal/services"
	"photo-sharing-backend/internal/storage"

	"github.com/rs/zerolog/log"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse represents a plain acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// decodeJSON reads a JSON request body into v
func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// statusFor maps a service error to its HTTP status and client message.
// Unexpected errors get a generic message; callers log the details.
func statusFor(err error) (int, string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Message
	case errors.Is(err, services.ErrLoginNameTaken),
		errors.Is(err, services.ErrCannotFindUser),
		errors.Is(err, services.ErrIncorrectPassword):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrPhotoNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrInvalidName):
		return http.StatusNotFound, storage.ErrNotFound.Error()
	case errors.Is(err, auth.ErrUnauthenticated),
		errors.Is(err, auth.ErrNotLoggedIn):
		return auth.StatusCode(err), err.Error()
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden, auth.ErrForbidden.Error()
	default:
		return http.StatusInternalServerError, "Server error"
	}
}

// respondServiceError maps err to a response, logging anything unexpected
func respondServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status, message := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg(msg)
	} else {
		log.Debug().Err(err).Str("path", r.URL.Path).Int("status", status).Msg(msg)
	}
	respondError(w, message, status)
}
