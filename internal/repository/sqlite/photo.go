package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"photo-sharing-backend/internal/models"
	"photo-sharing-backend/internal/repository"
)

// PhotoRepository handles database operations for photos
type PhotoRepository struct {
	db *sql.DB
}

// NewPhotoRepository creates a new photo repository
func NewPhotoRepository(db *sql.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

func (r *PhotoRepository) Create(ctx context.Context, photo *models.Photo) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO photos (id, filename, upload_time, user_id)
VALUES (?, ?, ?, ?)
`, photo.ID, photo.Filename, toUnix(photo.UploadTime), photo.UserID)
	if err != nil {
		return fmt.Errorf("failed to create photo: %w", err)
	}
	return nil
}

func (r *PhotoRepository) GetByID(ctx context.Context, id string) (*models.Photo, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, filename, upload_time, user_id FROM photos WHERE id = ?`, id)
	photo, err := scanPhoto(row)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("photo %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}
	return photo, nil
}

func (r *PhotoRepository) ListByUserID(ctx context.Context, userID string) ([]*models.Photo, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, filename, upload_time, user_id
FROM photos
WHERE user_id = ?
ORDER BY upload_time DESC, id
`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get photos: %w", err)
	}
	defer rows.Close()

	photos := []*models.Photo{}
	for rows.Next() {
		photo, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, photo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating photos: %w", err)
	}
	return photos, nil
}

func scanPhoto(row scanner) (*models.Photo, error) {
	var (
		photo      models.Photo
		uploadTime int64
	)
	if err := row.Scan(&photo.ID, &photo.Filename, &uploadTime, &photo.UserID); err != nil {
		return nil, err
	}
	photo.UploadTime = fromUnix(uploadTime)
	return &photo, nil
}

var _ repository.PhotoStore = (*PhotoRepository)(nil)
