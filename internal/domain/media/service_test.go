package media

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-social/internal/platform/apperr"
)

type fakeUploader struct {
	key, contentType, body string
}

func (f *fakeUploader) Put(_ context.Context, key string, body io.Reader, _ int64, ct string) (string, error) {
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.key, f.contentType, f.body = key, ct, string(b)
	return "https://cdn/" + key, nil
}

func newService(up *fakeUploader) *Service {
	s := NewService(up)
	s.newID = func() string { return "fixed" }
	return s
}

func TestUpload(t *testing.T) {
	up := &fakeUploader{}
	s := newService(up)

	url, err := s.Upload(context.Background(), 5, "Rex.JPEG", "image/jpeg", 3, strings.NewReader("abc"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/5/fixed.jpeg", url)
	assert.Equal(t, "image/jpeg", up.contentType)
	assert.Equal(t, "abc", up.body)
}

func TestUploadValidation(t *testing.T) {
	s := newService(&fakeUploader{})
	ctx := context.Background()

	_, err := s.Upload(ctx, 0, "a.png", "image/png", 1, strings.NewReader("x"))
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = s.Upload(ctx, 1, "a.txt", "text/plain", 1, strings.NewReader("x"))
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = s.Upload(ctx, 1, "a.png", "image/png", MaxSize+1, strings.NewReader("x"))
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = s.Upload(ctx, 1, "a.png", "image/png", 0, strings.NewReader(""))
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}
