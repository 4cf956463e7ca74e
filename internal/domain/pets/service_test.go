package pets_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-social/internal/adapters/storage/memory"
	"pet-social/internal/domain/pets"
	"pet-social/internal/domain/users"
	"pet-social/internal/platform/apperr"
)

func setup(t *testing.T) (*pets.Service, users.User, users.User) {
	t.Helper()
	store := memory.New()
	ctx := context.Background()
	owner, err := store.Users().Create(ctx, users.User{Email: "o@x.io", Username: "owner", Password: "h"})
	require.NoError(t, err)
	other, err := store.Users().Create(ctx, users.User{Email: "p@x.io", Username: "other", Password: "h"})
	require.NoError(t, err)
	return pets.NewService(store.Pets(), store.Users()), owner, other
}

func TestCreateDefaultsToPublic(t *testing.T) {
	svc, owner, _ := setup(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, owner.ID, pets.CreateInput{Name: " Rex ", Species: "dog"})
	require.NoError(t, err)
	assert.Equal(t, "Rex", p.Name)
	assert.True(t, p.IsPublic)
	assert.Equal(t, owner.ID, p.OwnerID)
	assert.Equal(t, pets.GenderUnknown, p.Gender)

	private := false
	hidden, err := svc.Create(ctx, owner.ID, pets.CreateInput{Name: "Shy", Species: "cat", IsPublic: &private})
	require.NoError(t, err)
	assert.False(t, hidden.IsPublic)

	mine, err := svc.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestCreateValidatesInputAndOwner(t *testing.T) {
	svc, owner, _ := setup(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, owner.ID, pets.CreateInput{Species: "dog"})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = svc.Create(ctx, owner.ID, pets.CreateInput{Name: "x", Species: "dog", Gender: "robot"})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = svc.Create(ctx, 999, pets.CreateInput{Name: "x", Species: "dog"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreateRunsHook(t *testing.T) {
	svc, owner, _ := setup(t)
	var got int64
	svc.OnCreate(func(_ context.Context, p pets.Pet) { got = p.ID })

	p, err := svc.Create(context.Background(), owner.ID, pets.CreateInput{Name: "Rex", Species: "dog"})
	require.NoError(t, err)
	assert.Equal(t, p.ID, got)
}

func TestPrivatePetHiddenFromOthers(t *testing.T) {
	svc, owner, other := setup(t)
	ctx := context.Background()
	private := false
	p, err := svc.Create(ctx, owner.ID, pets.CreateInput{Name: "Shy", Species: "cat", IsPublic: &private})
	require.NoError(t, err)

	_, err = svc.Get(ctx, p.ID, other.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	got, err := svc.Get(ctx, p.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestUpdateOwnerOnly(t *testing.T) {
	svc, owner, other := setup(t)
	ctx := context.Background()
	p, err := svc.Create(ctx, owner.ID, pets.CreateInput{Name: "Rex", Species: "dog", Breed: "lab"})
	require.NoError(t, err)

	name := "Max"
	_, err = svc.Update(ctx, p.ID, other.ID, pets.Patch{Name: &name})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	upd, err := svc.Update(ctx, p.ID, owner.ID, pets.Patch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Max", upd.Name)
	assert.Equal(t, "lab", upd.Breed)

	_, err = svc.Update(ctx, 12345, owner.ID, pets.Patch{Name: &name})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
