package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"photo-sharing-backend/internal/middleware"
	"photo-sharing-backend/internal/services"
	"photo-sharing-backend/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const maxUploadSize = 20 << 20

// PhotoHandler handles photo-related HTTP requests
type PhotoHandler struct {
	photoService   *services.PhotoService
	galleryService *services.GalleryService
	images         storage.ImageStore
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(photoService *services.PhotoService, galleryService *services.GalleryService, images storage.ImageStore) *PhotoHandler {
	return &PhotoHandler{
		photoService:   photoService,
		galleryService: galleryService,
		images:         images,
	}
}

// UploadPhoto handles POST /photos/new with a multipart "image" field
func (h *PhotoHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, "File too large", http.StatusBadRequest)
			return
		}
		if !errors.Is(err, http.ErrNotMultipart) {
			respondError(w, "Invalid multipart form", http.StatusBadRequest)
			return
		}
	}

	in := services.UploadInput{}
	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		in.File = file
		in.OriginalName = header.Filename
		in.ContentType = contentType(header)
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		respondError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	photo, err := h.photoService.Upload(ctx, userID, in)
	if err != nil {
		respondServiceError(w, r, err, "Failed to upload photo")
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("photo_id", photo.ID).
		Str("filename", photo.Filename).
		Msg("Photo uploaded")

	respondJSON(w, http.StatusCreated, photo)
}

func contentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// ListPhotosOfUser handles GET /photosOfUser/{userId}
func (h *PhotoHandler) ListPhotosOfUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	photos, err := h.photoService.ListByOwner(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err, "Failed to list photos")
		return
	}
	respondJSON(w, http.StatusOK, photos)
}

// GetUserPhotosWithComments handles GET /photos/user/{userId}
func (h *PhotoHandler) GetUserPhotosWithComments(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	gallery, err := h.galleryService.UserPhotosWithComments(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err, "Failed to load photos with comments")
		return
	}
	respondJSON(w, http.StatusOK, gallery)
}

// ServeImage handles GET /images/{filename}
func (h *PhotoHandler) ServeImage(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	if err := h.images.Serve(w, r, filename); err != nil {
		respondServiceError(w, r, err, "Failed to serve image")
	}
}
