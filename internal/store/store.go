// Package store owns the database connection for the process. Open connects
// and migrates, Close disconnects; the repositories it exposes are what the
// services are built on.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"photo-sharing-backend/internal/config"
	"photo-sharing-backend/internal/repository"
	"photo-sharing-backend/internal/repository/sqlite"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog/log"
)

// Client exposes the users, photos and comments collections
type Client struct {
	Users    repository.UserStore
	Photos   repository.PhotoStore
	Comments repository.CommentStore

	close func() error
}

// Open connects to the configured database and applies migrations
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Client, error) {
	switch cfg.Driver {
	case "postgres":
		return openPostgres(ctx, cfg)
	case "sqlite":
		return OpenSQLite(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// OpenSQLite opens an embedded database at path
func OpenSQLite(path string) (*Client, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", path).Msg("SQLite database opened")

	return &Client{
		Users:    sqlite.NewUserRepository(db),
		Photos:   sqlite.NewPhotoRepository(db),
		Comments: sqlite.NewCommentRepository(db),
		close:    db.Close,
	}, nil
}

func openPostgres(ctx context.Context, cfg config.DatabaseConfig) (*Client, error) {
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info().Msg("Database connection established")

	if err := migratePostgres(pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &Client{
		Users:    repository.NewUserRepository(pool),
		Photos:   repository.NewPhotoRepository(pool),
		Comments: repository.NewCommentRepository(pool),
		close: func() error {
			pool.Close()
			return nil
		},
	}, nil
}

func migratePostgres(pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer func(db *sql.DB) { _ = db.Close() }(db)

	n, err := repository.Migrate(db, "postgres")
	if err != nil {
		return err
	}
	if n > 0 {
		log.Info().Int("count", n).Msg("Applied database migrations")
	} else {
		log.Debug().Msg("No database migrations to apply")
	}
	return nil
}

// Close releases the underlying connections
func (c *Client) Close() error {
	if c.close == nil {
		return nil
	}
	return c.close()
}
