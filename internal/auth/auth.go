// Package auth issues and checks credentials for logged-in users. A Strategy
// is either a bearer JWT (stateless) or a server-side session behind a signed
// cookie; a process runs exactly one.
package auth

import (
	"errors"
	"fmt"
	"net/http"

	"photo-sharing-backend/internal/config"
	"photo-sharing-backend/internal/models"
)

var (
	ErrUnauthenticated = errors.New("Authorization header required")
	ErrForbidden       = errors.New("Invalid or expired token")
	ErrNotLoggedIn     = errors.New("User is not logged in")
)

// Identity is the authenticated caller
type Identity struct {
	UserID string
	Name   string
}

// Strategy issues, verifies and revokes credentials
type Strategy interface {
	// Issue starts an authenticated session for user. Token strategies return
	// the token; cookie strategies set the cookie on w and return "".
	Issue(w http.ResponseWriter, r *http.Request, user *models.User) (string, error)
	Authenticate(r *http.Request) (*Identity, error)
	Revoke(w http.ResponseWriter, r *http.Request) error
}

// New builds the strategy named in the configuration
func New(cfg config.AuthConfig) (Strategy, error) {
	switch cfg.Strategy {
	case "token":
		return NewTokenStrategy(cfg.Secret, cfg.TTL), nil
	case "session":
		return NewSessionStrategy(cfg.Secret, cfg.CookieName, cfg.TTL, cfg.CookieSecure), nil
	default:
		return nil, fmt.Errorf("unsupported auth strategy %q", cfg.Strategy)
	}
}

// StatusCode maps an authentication error to its HTTP status
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotLoggedIn):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
