package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
)

// LocalStore keeps images in a directory on disk
type LocalStore struct {
	dir string
}

// NewLocalStore creates the image directory if needed
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save writes a new file; an existing file with the same name is an error
func (s *LocalStore) Save(_ context.Context, filename string, r io.Reader, _ string) error {
	if !ValidName(filename) {
		return ErrInvalidName
	}
	path := filepath.Join(s.dir, filename)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write image file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to close image file: %w", err)
	}
	return nil
}

// Delete removes a file; a missing file is not an error
func (s *LocalStore) Delete(_ context.Context, filename string) error {
	if !ValidName(filename) {
		return ErrInvalidName
	}
	err := os.Remove(filepath.Join(s.dir, filename))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete image file: %w", err)
	}
	return nil
}

func (s *LocalStore) Serve(w http.ResponseWriter, r *http.Request, filename string) error {
	if !ValidName(filename) {
		return ErrInvalidName
	}
	path := filepath.Join(s.dir, filename)

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.IsDir() {
		return ErrNotFound
	}

	http.ServeFile(w, r, path)
	return nil
}
