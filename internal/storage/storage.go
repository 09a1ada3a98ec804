// Package storage places uploaded image files and serves them back.
package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
)

var (
	ErrNotFound    = errors.New("image not found")
	ErrInvalidName = errors.New("invalid image name")
)

// ImageStore is where uploaded image bytes live
type ImageStore interface {
	Save(ctx context.Context, filename string, r io.Reader, contentType string) error
	Delete(ctx context.Context, filename string) error
	// Serve writes the image to w, or redirects to where it can be fetched
	Serve(w http.ResponseWriter, r *http.Request, filename string) error
}

// ValidName reports whether filename is a plain file name with no path
// components
func ValidName(filename string) bool {
	if filename == "" || filename == "." || filename == ".." {
		return false
	}
	if strings.ContainsAny(filename, `/\`) {
		return false
	}
	return filepath.Base(filename) == filename
}
