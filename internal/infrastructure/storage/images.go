// Package storage persists report images on the local filesystem.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ImageStore writes uploaded report images under a base directory, one file
// per image with a generated object name. Paths returned are relative to the
// base directory so documents stay valid if the directory moves.
type ImageStore struct {
	baseDir string
}

// NewImageStore creates the base directory if needed.
func NewImageStore(baseDir string) (*ImageStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	return &ImageStore{baseDir: baseDir}, nil
}

// Save streams the image to disk and returns its relative path.
// The original filename only contributes its extension.
func (s *ImageStore) Save(r io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		ext = ".jpg"
	}

	name := uuid.NewString() + ext
	f, err := os.Create(filepath.Join(s.baseDir, name))
	if err != nil {
		return "", fmt.Errorf("create image: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write image: %w", err)
	}
	return name, nil
}

// Open returns a reader for a previously saved image.
func (s *ImageStore) Open(relPath string) (io.ReadCloser, error) {
	// reject path traversal out of the base dir
	clean := filepath.Clean(relPath)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return nil, os.ErrNotExist
	}
	return os.Open(filepath.Join(s.baseDir, clean))
}
