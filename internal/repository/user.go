package repository

import (
	"context"
	"fmt"

	"photo-sharing-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, login_name, password, first_name, last_name,
	location, description, occupation, address, birthday`

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.LoginName, user.Password, user.FirstName, user.LastName,
		user.Location, user.Description, user.Occupation, user.Address, user.Birthday,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("login_name %q: %w", user.LoginName, ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetByLoginName retrieves a user by login name
func (r *UserRepository) GetByLoginName(ctx context.Context, loginName string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE login_name = $1`
	user, err := scanUser(r.db.QueryRow(ctx, query, loginName))
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("user %q: %w", loginName, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by login name: %w", err)
	}
	return user, nil
}

// List retrieves all users ordered by name
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY last_name, first_name, id`
	rows, err := r.db.Query(ctx, query)
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

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.LoginName, &user.Password, &user.FirstName, &user.LastName,
		&user.Location, &user.Description, &user.Occupation, &user.Address, &user.Birthday,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
