package localstore

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutAndServe(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir, "/uploads/")
	require.NoError(t, err)

	url, err := s.Put(context.Background(), "7/abc.png", strings.NewReader("png-bytes"), 9, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/7/abc.png", url)

	raw, err := os.ReadFile(filepath.Join(dir, "7", "abc.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(raw))

	srv := httptest.NewServer(s.Handler("/uploads"))
	defer srv.Close()
	resp, err := http.Get(srv.URL + "/uploads/7/abc.png")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "png-bytes", string(body))
}

func TestPutRejectsTraversal(t *testing.T) {
	s, err := New(t.TempDir(), "/uploads")
	require.NoError(t, err)

	for _, key := range []string{"", "../x.png", "a/../../x.png", "/abs.png"} {
		_, err := s.Put(context.Background(), key, strings.NewReader("x"), 1, "image/png")
		assert.ErrorIs(t, err, ErrBadKey, key)
	}
}
