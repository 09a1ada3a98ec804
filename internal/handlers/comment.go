package handlers

import (
	"net/http"

	"photo-sharing-backend/internal/middleware"
	"photo-sharing-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// CommentHandler handles comment-related HTTP requests
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// CreateComment handles POST /commentsOfPhoto/{photo_id}
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	photoID := chi.URLParam(r, "photo_id")

	var req services.CommentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	comment, err := h.commentService.Create(ctx, photoID, userID, req.Comment)
	if err != nil {
		respondServiceError(w, r, err, "Failed to create comment")
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("photo_id", photoID).
		Str("comment_id", comment.ID).
		Msg("Comment created")

	respondJSON(w, http.StatusCreated, comment)
}
