package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"photo-sharing-backend/internal/auth"
	"photo-sharing-backend/internal/models"
)

func TestRequireAuth(t *testing.T) {
	strategy := auth.NewTokenStrategy("secret", time.Hour)
	token, err := strategy.GenerateToken(&models.User{ID: "u1", FirstName: "Ann", LastName: "Lee"})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var seen string
	handler := RequireAuth(strategy)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetUserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusForbidden},
		{"valid token", "Bearer " + token, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodPost, "/photos/new", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
			if tt.status != http.StatusNoContent {
				var body map[string]string
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
					t.Fatalf("decode error body: %v", err)
				}
				if body["error"] == "" {
					t.Fatalf("expected error message")
				}
				if seen != "" {
					t.Fatalf("handler should not run")
				}
			} else if seen != "u1" {
				t.Fatalf("expected user id in context, got %q", seen)
			}
		})
	}
}

func TestGetUserIDWithoutIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetUserID(req.Context()); got != "" {
		t.Fatalf("expected empty user id, got %q", got)
	}
}
