package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"photo-sharing-backend/internal/models"
	"photo-sharing-backend/internal/repository"
)

const userColumns = `id, login_name, password, first_name, last_name,
	location, description, occupation, address, birthday`

// UserRepository handles database operations for users
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	var birthday sql.NullInt64
	if user.Birthday != nil {
		birthday = sql.NullInt64{Int64: toUnix(*user.Birthday), Valid: true}
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (`+userColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, user.ID, user.LoginName, user.Password, user.FirstName, user.LastName,
		user.Location, user.Description, user.Occupation, user.Address, birthday)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("login_name %q: %w", user.LoginName, repository.ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	user, err := scanUser(row)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("user %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetByLoginName(ctx context.Context, loginName string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE login_name = ?`, loginName)
	user, err := scanUser(row)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("user %q: %w", loginName, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by login name: %w", err)
	}
	return user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY last_name, first_name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*models.User, error) {
	var (
		user     models.User
		birthday sql.NullInt64
	)
	err := row.Scan(
		&user.ID, &user.LoginName, &user.Password, &user.FirstName, &user.LastName,
		&user.Location, &user.Description, &user.Occupation, &user.Address, &birthday,
	)
	if err != nil {
		return nil, err
	}
	if birthday.Valid {
		t := fromUnix(birthday.Int64)
		user.Birthday = &t
	}
	return &user, nil
}
