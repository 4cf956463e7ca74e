package users_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"pet-social/internal/adapters/storage/memory"
	"pet-social/internal/domain/users"
	"pet-social/internal/platform/apperr"
)

func newService() (*users.Service, users.Repository) {
	repo := memory.New().Users()
	return users.NewService(repo).WithCost(bcrypt.MinCost), repo
}

func TestRegisterStoresHashAndNormalizesEmail(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	u, err := svc.Register(ctx, users.RegisterInput{
		Email: "  Ana@Example.com ", Username: "ana", Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.NotEqual(t, "s3cret-pass", u.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("s3cret-pass")))

	stored, err := repo.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, stored.ID)
}

func TestRegisterDuplicates(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Register(ctx, users.RegisterInput{Email: "a@x.io", Username: "a", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, users.RegisterInput{Email: "A@X.io", Username: "b", Password: "password1"})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = svc.Register(ctx, users.RegisterInput{Email: "b@x.io", Username: "a", Password: "password1"})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = svc.Register(ctx, users.RegisterInput{Email: "", Username: "c", Password: "password1"})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	u, err := svc.Register(ctx, users.RegisterInput{Email: "a@x.io", Username: "a", Password: "password1"})
	require.NoError(t, err)

	got, err := svc.Authenticate(ctx, "A@x.io", "password1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Authenticate(ctx, "a@x.io", "wrong")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = svc.Authenticate(ctx, "nobody@x.io", "password1")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestUpdateProfileRehashesPassword(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	u, err := svc.Register(ctx, users.RegisterInput{Email: "a@x.io", Username: "a", Password: "password1"})
	require.NoError(t, err)

	bio := "hola"
	pw := "password2"
	upd, err := svc.UpdateProfile(ctx, u.ID, users.Patch{Bio: &bio, Password: &pw})
	require.NoError(t, err)
	assert.Equal(t, "hola", upd.Bio)

	_, err = svc.Authenticate(ctx, "a@x.io", "password2")
	assert.NoError(t, err)
	_, err = svc.Authenticate(ctx, "a@x.io", "password1")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}
