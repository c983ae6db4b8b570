package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// 10MB upload ceiling, same limit the post form advertises.
const maxImageSize = 10 << 20

var imageExts = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageStore persists uploaded post illustrations on local disk. The rest
// of the app only ever sees the returned path, so the backing store can be
// swapped without touching the handlers.
type ImageStore struct {
	dir string
}

func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &ImageStore{dir: dir}, nil
}

// Save validates and writes one uploaded image, returning its public path.
func (s *ImageStore) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > maxImageSize {
		return "", fmt.Errorf("image too large: %d bytes", header.Size)
	}

	contentType := header.Header.Get("Content-Type")
	ext, ok := imageExts[contentType]
	if !ok {
		return "", fmt.Errorf("unsupported image type %q", contentType)
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}
