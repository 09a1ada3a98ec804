package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"sync"
	"time"

	"photo-sharing-backend/internal/models"

	"github.com/google/uuid"
)

type session struct {
	userID  string
	name    string
	expires time.Time
}

// SessionStrategy keeps sessions in process memory. The cookie holds the
// session id plus an HMAC of it, so ids cannot be forged or guessed.
type SessionStrategy struct {
	mu       sync.Mutex
	sessions map[string]session

	secret     []byte
	cookieName string
	maxAge     time.Duration
	secure     bool
	now        func() time.Time
}

// NewSessionStrategy creates a session strategy
func NewSessionStrategy(secret, cookieName string, maxAge time.Duration, secure bool) *SessionStrategy {
	return &SessionStrategy{
		sessions:   make(map[string]session),
		secret:     []byte(secret),
		cookieName: cookieName,
		maxAge:     maxAge,
		secure:     secure,
		now:        time.Now,
	}
}

func (s *SessionStrategy) Issue(w http.ResponseWriter, _ *http.Request, user *models.User) (string, error) {
	id := uuid.NewString()
	now := s.now()

	s.mu.Lock()
	for sid, sess := range s.sessions {
		if !now.Before(sess.expires) {
			delete(s.sessions, sid)
		}
	}
	s.sessions[id] = session{
		userID:  user.ID,
		name:    user.DisplayName(),
		expires: now.Add(s.maxAge),
	}
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    s.sign(id),
		Path:     "/",
		MaxAge:   int(s.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return "", nil
}

func (s *SessionStrategy) Authenticate(r *http.Request) (*Identity, error) {
	id, err := s.sessionID(r)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotLoggedIn
	}
	if !s.now().Before(sess.expires) {
		delete(s.sessions, id)
		return nil, ErrNotLoggedIn
	}
	return &Identity{UserID: sess.userID, Name: sess.name}, nil
}

// Revoke destroys the session and clears the cookie
func (s *SessionStrategy) Revoke(w http.ResponseWriter, r *http.Request) error {
	id, err := s.sessionID(r)
	if err != nil {
		return err
	}

	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return ErrNotLoggedIn
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *SessionStrategy) sessionID(r *http.Request) (string, error) {
	cookie, err := r.Cookie(s.cookieName)
	if err != nil || cookie.Value == "" {
		return "", ErrNotLoggedIn
	}
	id, ok := s.verify(cookie.Value)
	if !ok {
		return "", ErrNotLoggedIn
	}
	return id, nil
}

func (s *SessionStrategy) mac(id string) []byte {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(id))
	return h.Sum(nil)
}

func (s *SessionStrategy) sign(id string) string {
	return id + "." + base64.RawURLEncoding.EncodeToString(s.mac(id))
}

func (s *SessionStrategy) verify(value string) (string, bool) {
	i := strings.LastIndexByte(value, '.')
	if i <= 0 {
		return "", false
	}
	id, sig := value[:i], value[i+1:]
	got, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return "", false
	}
	return id, hmac.Equal(got, s.mac(id))
}
