package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"photo-sharing-backend/internal/auth"
	"photo-sharing-backend/internal/models"
	"photo-sharing-backend/internal/repository"

	"github.com/google/uuid"
)

// CommentRequest is the body of POST /commentsOfPhoto/{photo_id}
type CommentRequest struct {
	Comment string `json:"comment"`
}

// CommentService handles comments on photos
type CommentService struct {
	commentRepo repository.CommentStore
	photoRepo   repository.PhotoStore
	userRepo    repository.UserStore
	hub         *Hub
	now         func() time.Time
}

// NewCommentService creates a new comment service
func NewCommentService(
	commentRepo repository.CommentStore,
	photoRepo repository.PhotoStore,
	userRepo repository.UserStore,
	hub *Hub,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		photoRepo:   photoRepo,
		userRepo:    userRepo,
		hub:         hub,
		now:         time.Now,
	}
}

// Create adds a comment by authorID to an existing photo
func (s *CommentService) Create(ctx context.Context, photoID, authorID, text string) (*models.CommentView, error) {
	if authorID == "" {
		return nil, auth.ErrUnauthenticated
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ValidationError{Field: "comment", Message: "Comment cannot be empty"}
	}

	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPhotoNotFound
		}
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}

	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get author: %w", err)
	}

	comment := &models.Comment{
		ID:       uuid.New().String(),
		Text:     text,
		DateTime: s.now(),
		UserID:   author.ID,
		PhotoID:  photo.ID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	view := &models.CommentView{
		ID:       comment.ID,
		Text:     comment.Text,
		DateTime: comment.DateTime,
		PhotoID:  comment.PhotoID,
		User:     author.Author(),
	}
	if photo.UserID != author.ID {
		s.hub.NotifyCommentAdded(photo.UserID, *view)
	}
	return view, nil
}
