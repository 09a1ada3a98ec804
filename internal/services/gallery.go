package services

import (
	"context"
	"errors"
	"fmt"

	"photo-sharing-backend/internal/models"
	"photo-sharing-backend/internal/repository"

	"golang.org/x/sync/errgroup"
)

// GalleryService assembles a user's photos together with their comments
type GalleryService struct {
	userRepo    repository.UserStore
	commentRepo repository.CommentStore
	photos      *PhotoService
}

// NewGalleryService creates a new gallery service
func NewGalleryService(userRepo repository.UserStore, commentRepo repository.CommentStore, photos *PhotoService) *GalleryService {
	return &GalleryService{
		userRepo:    userRepo,
		commentRepo: commentRepo,
		photos:      photos,
	}
}

// UserPhotosWithComments returns the user's photos, each with its comments
// newest first. Comments for every photo are loaded concurrently; one failed
// load fails the whole call.
func (s *GalleryService) UserPhotosWithComments(ctx context.Context, userID string) (*models.UserGallery, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	photos, err := s.photos.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}

	entries := make([]models.PhotoWithComments, len(photos))
	g, gctx := errgroup.WithContext(ctx)
	for i, photo := range photos {
		g.Go(func() error {
			comments, err := s.commentRepo.ListByPhotoID(gctx, photo.ID)
			if err != nil {
				return fmt.Errorf("photo %s: %w", photo.ID, err)
			}
			entries[i] = models.PhotoWithComments{PhotoView: photo, Comments: comments}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}

	return &models.UserGallery{
		User:   user.Author(),
		Photos: entries,
	}, nil
}
