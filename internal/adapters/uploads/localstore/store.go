// Package localstore guarda uploads en disco. Pensado para dev.
package localstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

var ErrBadKey = errors.New("localstore: invalid key")

type Store struct {
	dir       string
	publicURL string
}

func New(dir, publicURL string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("localstore: dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("localstore: mkdir: %w", err)
	}
	return &Store{dir: dir, publicURL: strings.TrimRight(publicURL, "/")}, nil
}

func (s *Store) Put(ctx context.Context, key string, body io.Reader, _ int64, _ string) (string, error) {
	clean := filepath.Clean("/" + key)
	if key == "" || clean == "/" || clean != "/"+key {
		return "", ErrBadKey
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("localstore: mkdir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("localstore: create: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("localstore: write: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("localstore: close: %w", err)
	}
	return s.publicURL + "/" + key, nil
}

// Handler sirve los archivos guardados; se monta bajo el prefijo de publicURL.
func (s *Store) Handler(prefix string) http.Handler {
	return http.StripPrefix(prefix, http.FileServer(http.Dir(s.dir)))
}
