package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"photo-sharing-backend/internal/models"
	"photo-sharing-backend/internal/repository"
)

// CommentRepository handles database operations for comments
type CommentRepository struct {
	db *sql.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO comments (id, comment, date_time, user_id, photo_id)
VALUES (?, ?, ?, ?, ?)
`, comment.ID, comment.Text, toUnix(comment.DateTime), comment.UserID, comment.PhotoID)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) ListByPhotoID(ctx context.Context, photoID string) ([]models.CommentView, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT c.id, c.comment, c.date_time, c.photo_id, u.id, u.first_name, u.last_name
FROM comments c
JOIN users u ON u.id = c.user_id
WHERE c.photo_id = ?
ORDER BY c.date_time DESC, c.id
`, photoID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	defer rows.Close()

	comments := []models.CommentView{}
	for rows.Next() {
		var (
			c        models.CommentView
			dateTime int64
		)
		err := rows.Scan(&c.ID, &c.Text, &dateTime, &c.PhotoID, &c.User.ID, &c.User.FirstName, &c.User.LastName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		c.DateTime = fromUnix(dateTime)
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}
	return comments, nil
}

var (
	_ repository.CommentStore = (*CommentRepository)(nil)
	_ repository.UserStore    = (*UserRepository)(nil)
)
