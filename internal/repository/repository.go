package repository

import (
	"context"
	"errors"

	"photo-sharing-backend/internal/models"
)

var (
	// ErrNotFound is returned when a lookup matches no record
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert violates a unique constraint
	ErrDuplicate = errors.New("duplicate")
)

// UserStore is the users collection
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByLoginName(ctx context.Context, loginName string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
}

// PhotoStore is the photos collection
type PhotoStore interface {
	Create(ctx context.Context, photo *models.Photo) error
	GetByID(ctx context.Context, id string) (*models.Photo, error)
	ListByUserID(ctx context.Context, userID string) ([]*models.Photo, error)
}

// CommentStore is the comments collection. Listings resolve the author's name.
type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPhotoID(ctx context.Context, photoID string) ([]models.CommentView, error)
}

var (
	_ UserStore    = (*UserRepository)(nil)
	_ PhotoStore   = (*PhotoRepository)(nil)
	_ CommentStore = (*CommentRepository)(nil)
)
