package uploads

import (
	"context"
	"io"
)

// Uploader guarda un objeto bajo key y devuelve la URL pública.
type Uploader interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}
