package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"photo-sharing-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims carried by a bearer token
type Claims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// TokenStrategy authenticates with HS256 bearer tokens. Tokens cannot be
// revoked server-side; they stop working at expiry.
type TokenStrategy struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenStrategy creates a token strategy
func NewTokenStrategy(secret string, ttl time.Duration) *TokenStrategy {
	return &TokenStrategy{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// GenerateToken generates a JWT token for a user
func (s *TokenStrategy) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Name:   user.DisplayName(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns its claims
func (s *TokenStrategy) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.UserID == "" {
		return nil, fmt.Errorf("user_id not found in token")
	}

	return claims, nil
}

func (s *TokenStrategy) Issue(_ http.ResponseWriter, _ *http.Request, user *models.User) (string, error) {
	return s.GenerateToken(user)
}

func (s *TokenStrategy) Authenticate(r *http.Request) (*Identity, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, ErrUnauthenticated
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return nil, fmt.Errorf("invalid authorization header format: %w", ErrUnauthenticated)
	}

	claims, err := s.ValidateToken(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrForbidden, err)
	}

	return &Identity{UserID: claims.UserID, Name: claims.Name}, nil
}

// Revoke is a no-op; the client discards its token
func (s *TokenStrategy) Revoke(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}
