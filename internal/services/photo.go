package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"photo-sharing-backend/internal/auth"
	"photo-sharing-backend/internal/models"
	"photo-sharing-backend/internal/repository"
	"photo-sharing-backend/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var extPattern = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)

// UploadInput is an uploaded file as received from the client
type UploadInput struct {
	File         io.Reader
	OriginalName string
	ContentType  string
}

// PhotoService handles photo uploads and listings
type PhotoService struct {
	photoRepo repository.PhotoStore
	userRepo  repository.UserStore
	images    storage.ImageStore
	publicURL string
	hub       *Hub
	now       func() time.Time
}

// NewPhotoService creates a new photo service. publicURL prefixes image
// URLs; empty yields host-relative URLs.
func NewPhotoService(photoRepo repository.PhotoStore, userRepo repository.UserStore, images storage.ImageStore, publicURL string, hub *Hub) *PhotoService {
	return &PhotoService{
		photoRepo: photoRepo,
		userRepo:  userRepo,
		images:    images,
		publicURL: strings.TrimRight(publicURL, "/"),
		hub:       hub,
		now:       time.Now,
	}
}

// ImageURL returns where the image with filename can be fetched
func (s *PhotoService) ImageURL(filename string) string {
	return s.publicURL + "/images/" + filename
}

func (s *PhotoService) view(photo *models.Photo) models.PhotoView {
	return models.PhotoView{Photo: *photo, URL: s.ImageURL(photo.Filename)}
}

// Upload stores the file under a fresh unique name and records the photo
func (s *PhotoService) Upload(ctx context.Context, ownerID string, in UploadInput) (*models.PhotoView, error) {
	if ownerID == "" {
		return nil, auth.ErrUnauthenticated
	}
	if in.File == nil {
		return nil, &ValidationError{Field: "image", Message: "No file uploaded"}
	}

	// a token can outlive its user
	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get owner: %w", err)
	}

	now := s.now()
	filename, err := uniqueFilename(in.OriginalName, now)
	if err != nil {
		return nil, err
	}

	if err := s.images.Save(ctx, filename, in.File, in.ContentType); err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	photo := &models.Photo{
		ID:         uuid.New().String(),
		Filename:   filename,
		UploadTime: now,
		UserID:     owner.ID,
	}
	if err := s.photoRepo.Create(ctx, photo); err != nil {
		if delErr := s.images.Delete(ctx, filename); delErr != nil {
			log.Warn().Err(delErr).Str("filename", filename).Msg("Failed to remove orphaned image")
		}
		return nil, fmt.Errorf("failed to create photo record: %w", err)
	}

	view := s.view(photo)
	s.hub.NotifyPhotoUploaded(owner.ID, view)
	return &view, nil
}

// ListByOwner retrieves all photos owned by a user, newest first
func (s *PhotoService) ListByOwner(ctx context.Context, userID string) ([]models.PhotoView, error) {
	photos, err := s.photoRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]models.PhotoView, 0, len(photos))
	for _, p := range photos {
		views = append(views, s.view(p))
	}
	return views, nil
}

// uniqueFilename builds "<unix millis>-<12 hex chars><ext>", keeping the
// original extension when it looks like one
func uniqueFilename(original string, now time.Time) (string, error) {
	suffix := make([]byte, 6)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("failed to generate filename: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(original))
	if !extPattern.MatchString(ext) {
		ext = ""
	}
	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), hex.EncodeToString(suffix), ext), nil
}
