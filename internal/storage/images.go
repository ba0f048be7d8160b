// Package storage saves uploaded post images to local disk.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrUnsupportedImageType = errors.New("unsupported image type")

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ImageStore writes uploaded images under a single directory and hands back
// the public URL path they are served from.
type ImageStore struct {
	dir    string
	logger *zap.Logger
}

func NewImageStore(dir string, logger *zap.Logger) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &ImageStore{dir: dir, logger: logger}, nil
}

// Save stores the uploaded file under a random name, keeping only the
// original extension, and returns its "/uploads/..." URL path.
func (s *ImageStore) Save(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedImageType
	}

	name := uuid.NewString() + ext
	fullPath := filepath.Join(s.dir, name)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	s.logger.Debug("Image saved", zap.String("path", fullPath))
	return "/uploads/" + name, nil
}
