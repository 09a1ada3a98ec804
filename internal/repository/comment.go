package repository

import (
	"context"
	"fmt"

	"photo-sharing-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CommentRepository handles database operations for comments
type CommentRepository struct {
	db *pgxpool.Pool
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create creates a new comment
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, comment, date_time, user_id, photo_id)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query,
		comment.ID, comment.Text, comment.DateTime, comment.UserID, comment.PhotoID,
	)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// ListByPhotoID retrieves the comments on a photo, most recent first,
// with each author's name joined in
func (r *CommentRepository) ListByPhotoID(ctx context.Context, photoID string) ([]models.CommentView, error) {
	query := `
		SELECT c.id, c.comment, c.date_time, c.photo_id, u.id, u.first_name, u.last_name
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.photo_id = $1
		ORDER BY c.date_time DESC, c.id
	`
	rows, err := r.db.Query(ctx, query, photoID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	defer rows.Close()

	comments := []models.CommentView{}
	for rows.Next() {
		var c models.CommentView
		err := rows.Scan(
			&c.ID, &c.Text, &c.DateTime, &c.PhotoID,
			&c.User.ID, &c.User.FirstName, &c.User.LastName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}
	return comments, nil
}
