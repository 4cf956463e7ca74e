// Package media recibe imágenes (fotos de mascotas, posts) y las delega al Uploader.
package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"pet-social/internal/platform/apperr"
	"pet-social/internal/ports/uploads"
)

const MaxSize = 10 << 20

var extByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type Service struct {
	up    uploads.Uploader
	newID func() string
}

func NewService(up uploads.Uploader) *Service {
	return &Service{up: up, newID: uuid.NewString}
}

// Upload valida tipo y tamaño y guarda bajo "{userID}/{uuid}{ext}".
func (s *Service) Upload(ctx context.Context, userID int64, filename, contentType string, size int64, body io.Reader) (string, error) {
	if userID <= 0 {
		return "", apperr.ErrUnauthorized
	}
	ct := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	ext, ok := extByType[ct]
	if !ok {
		return "", fmt.Errorf("%w: unsupported content type %q", apperr.ErrInvalidInput, ct)
	}
	if size <= 0 || size > MaxSize {
		return "", fmt.Errorf("%w: file must be between 1 byte and %d bytes", apperr.ErrInvalidInput, MaxSize)
	}
	if ct == "image/jpeg" && strings.EqualFold(path.Ext(filename), ".jpeg") {
		ext = ".jpeg"
	}

	key := strconv.FormatInt(userID, 10) + "/" + s.newID() + ext
	return s.up.Put(ctx, key, body, size, ct)
}
