package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"photo-sharing-backend/internal/models"
	"photo-sharing-backend/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost = 10
	// bcrypt rejects passwords longer than this many bytes
	maxPasswordBytes = 72
)

// RegisterRequest is the body of POST /user
type RegisterRequest struct {
	LoginName   string `json:"login_name" validate:"required,max=64"`
	Password    string `json:"password" validate:"required,max=72"`
	FirstName   string `json:"first_name" validate:"required,max=100"`
	LastName    string `json:"last_name" validate:"required,max=100"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Occupation  string `json:"occupation"`
	Address     string `json:"address"`
	Birthday    string `json:"birthday"`
}

// LoginRequest is the body of POST /admin/login
type LoginRequest struct {
	LoginName string `json:"login_name" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

// UserService manages user records and credentials
type UserService struct {
	userRepo repository.UserStore
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserStore) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// HashPassword hashes a password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Register creates a new user
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	req.LoginName = strings.TrimSpace(req.LoginName)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if len(req.Password) > maxPasswordBytes {
		return nil, &ValidationError{Field: "password", Message: "password must be at most 72 bytes"}
	}

	birthday, err := parseBirthday(req.Birthday)
	if err != nil {
		return nil, err
	}

	_, err = s.userRepo.GetByLoginName(ctx, req.LoginName)
	switch {
	case err == nil:
		return nil, ErrLoginNameTaken
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("failed to check login name: %w", err)
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:          uuid.New().String(),
		LoginName:   req.LoginName,
		Password:    hash,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Location:    strings.TrimSpace(req.Location),
		Description: strings.TrimSpace(req.Description),
		Occupation:  strings.TrimSpace(req.Occupation),
		Address:     strings.TrimSpace(req.Address),
		Birthday:    birthday,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrLoginNameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate checks a login name and password
func (s *UserService) Authenticate(ctx context.Context, req LoginRequest) (*models.User, error) {
	req.LoginName = strings.TrimSpace(req.LoginName)
	if req.LoginName == "" || req.Password == "" {
		return nil, &ValidationError{Field: "login_name", Message: "Missing login_name or password"}
	}

	user, err := s.userRepo.GetByLoginName(ctx, req.LoginName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCannotFindUser
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !CheckPassword(user.Password, req.Password) {
		return nil, ErrIncorrectPassword
	}
	return user, nil
}

// FindByLoginName retrieves a user by login name
func (s *UserService) FindByLoginName(ctx context.Context, loginName string) (*models.User, error) {
	user, err := s.userRepo.GetByLoginName(ctx, loginName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// FindByID retrieves a user by ID
func (s *UserService) FindByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListAll retrieves every user
func (s *UserService) ListAll(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.List(ctx)
}

func parseBirthday(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, &ValidationError{Field: "birthday", Message: "birthday must be a date (YYYY-MM-DD)"}
}
