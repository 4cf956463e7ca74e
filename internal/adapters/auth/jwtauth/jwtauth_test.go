package jwtauth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-social/internal/ports/auth"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	a, err := New("secret", time.Hour)
	require.NoError(t, err)

	tok, err := a.Issue(context.Background(), auth.Claims{UserID: 42, Username: "rex"})
	require.NoError(t, err)

	c, err := a.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, auth.Claims{UserID: 42, Username: "rex"}, c)
}

func TestVerifyRejects(t *testing.T) {
	a, err := New("secret", time.Hour)
	require.NoError(t, err)
	other, err := New("other", time.Hour)
	require.NoError(t, err)

	tok, err := a.Issue(context.Background(), auth.Claims{UserID: 1})
	require.NoError(t, err)

	_, err = other.Verify(context.Background(), tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = a.Verify(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrTokenEmpty)

	_, err = a.Verify(context.Background(), "not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpired(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a, err := New("secret", time.Minute)
	require.NoError(t, err)
	a.WithClock(func() time.Time { return base })

	tok, err := a.Issue(context.Background(), auth.Claims{UserID: 7})
	require.NoError(t, err)

	a.WithClock(func() time.Time { return base.Add(2 * time.Minute) })
	_, err = a.Verify(context.Background(), tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewRequiresSecret(t *testing.T) {
	_, err := New(" ", time.Hour)
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestIssueRequiresUser(t *testing.T) {
	a, err := New("secret", time.Hour)
	require.NoError(t, err)
	_, err = a.Issue(context.Background(), auth.Claims{})
	assert.Error(t, err)
}
