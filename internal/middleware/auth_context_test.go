package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"pet-social/internal/ports/auth"
)

type fakeVerifier struct{}

func (fakeVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if token == "good" {
		return auth.Claims{UserID: 7, Username: "seven"}, nil
	}
	return auth.Claims{}, errors.New("bad token")
}

func run(verifier auth.AuthVerifier, req *http.Request) (auth.Claims, bool) {
	var got auth.Claims
	var ok bool
	h := AuthContext(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = GetClaims(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), req)
	return got, ok
}

func TestAuthContextDevHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(DebugUserHeader, "42")
	c, ok := run(nil, req)
	assert.True(t, ok)
	assert.Equal(t, int64(42), c.UserID)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(DebugUserHeader, "not-a-number")
	_, ok = run(nil, req)
	assert.False(t, ok)
}

func TestAuthContextBearer(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	c, ok := run(fakeVerifier{}, req)
	assert.True(t, ok)
	assert.Equal(t, "seven", c.Username)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad")
	_, ok = run(fakeVerifier{}, req)
	assert.False(t, ok)

	// con verifier, el header de debug se ignora
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(DebugUserHeader, "42")
	_, ok = run(fakeVerifier{}, req)
	assert.False(t, ok)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("bearer abc"))
	assert.Equal(t, "", bearerToken("Basic abc"))
	assert.Equal(t, "", bearerToken("abc"))
	assert.Equal(t, "", bearerToken(""))
}
