package matches_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pet-social/internal/adapters/storage/memory"
	"pet-social/internal/domain/matches"
	"pet-social/internal/domain/pets"
	"pet-social/internal/platform/apperr"
	"pet-social/internal/ports/notify"
)

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) Notify(_ context.Context, userID int64, p notify.Payload) {
	m.Called(userID, p.Kind, p.Data["otherPetId"])
}

type fixture struct {
	store *memory.Store
	svc   *matches.Service
	n     *mockNotifier
	petA  pets.Pet // de user1
	petB  pets.Pet // de user2
	petC  pets.Pet // de user2
	user1 int64
	user2 int64
}

func setup(t *testing.T) fixture {
	t.Helper()
	store := memory.New()
	ctx := context.Background()
	mk := func(owner int64, name string) pets.Pet {
		p, err := store.Pets().Create(ctx, pets.Pet{OwnerID: owner, Name: name, IsPublic: true})
		require.NoError(t, err)
		return p
	}
	n := &mockNotifier{}
	return fixture{
		store: store,
		svc:   matches.NewService(store.Matches(), store.Pets(), n, nil),
		n:     n,
		petA:  mk(1, "A"),
		petB:  mk(2, "B"),
		petC:  mk(2, "C"),
		user1: 1,
		user2: 2,
	}
}

func TestMutualRightSwipesPromoteBothRows(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	// cada dueño recibe la mascota del otro lado del par
	f.n.On("Notify", f.user1, notify.KindMatch, f.petB.ID).Once()
	f.n.On("Notify", f.user2, notify.KindMatch, f.petA.ID).Once()

	first, err := f.svc.Swipe(ctx, f.user1, matches.SwipeInput{PetID: f.petA.ID, TargetPetID: f.petB.ID, Direction: matches.DirectionRight})
	require.NoError(t, err)
	assert.False(t, first.Mutual)
	assert.False(t, first.Match.IsMatch)

	second, err := f.svc.Swipe(ctx, f.user2, matches.SwipeInput{PetID: f.petB.ID, TargetPetID: f.petA.ID, Direction: matches.DirectionRight})
	require.NoError(t, err)
	assert.True(t, second.Mutual)
	assert.True(t, second.Match.IsMatch)

	for _, uid := range []int64{f.user1, f.user2} {
		mutual, err := f.svc.List(ctx, uid, true)
		require.NoError(t, err)
		require.Len(t, mutual, 1)
		assert.True(t, mutual[0].IsMatch)
	}
	f.n.AssertExpectations(t)
}

func TestLeftSwipeNeverMatches(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Swipe(ctx, f.user1, matches.SwipeInput{PetID: f.petA.ID, TargetPetID: f.petB.ID, Direction: matches.DirectionLeft})
	require.NoError(t, err)
	res, err := f.svc.Swipe(ctx, f.user2, matches.SwipeInput{PetID: f.petB.ID, TargetPetID: f.petA.ID, Direction: matches.DirectionRight})
	require.NoError(t, err)
	assert.False(t, res.Mutual)

	all, err := f.svc.List(ctx, f.user1, false)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].IsMatch)

	mutual, err := f.svc.List(ctx, f.user2, true)
	require.NoError(t, err)
	assert.Empty(t, mutual)
	f.n.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
}

func TestSwipeValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Swipe(ctx, f.user1, matches.SwipeInput{PetID: f.petA.ID, TargetPetID: f.petB.ID, Direction: "up"})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	// mascota ajena como origen
	_, err = f.svc.Swipe(ctx, f.user1, matches.SwipeInput{PetID: f.petB.ID, TargetPetID: f.petC.ID, Direction: matches.DirectionRight})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	// swipe sobre mascota propia
	_, err = f.svc.Swipe(ctx, f.user2, matches.SwipeInput{PetID: f.petB.ID, TargetPetID: f.petC.ID, Direction: matches.DirectionRight})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = f.svc.Swipe(ctx, f.user1, matches.SwipeInput{PetID: f.petA.ID, TargetPetID: 999, Direction: matches.DirectionRight})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = f.svc.Swipe(ctx, f.user1, matches.SwipeInput{PetID: f.petA.ID, TargetPetID: f.petB.ID, Direction: matches.DirectionLeft})
	require.NoError(t, err)
	_, err = f.svc.Swipe(ctx, f.user1, matches.SwipeInput{PetID: f.petA.ID, TargetPetID: f.petB.ID, Direction: matches.DirectionRight})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestSwipeOnPrivatePetIsNotFound(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	hidden, err := f.store.Pets().Create(ctx, pets.Pet{OwnerID: f.user2, Name: "Hidden", IsPublic: false})
	require.NoError(t, err)

	_, err = f.svc.Swipe(ctx, f.user1, matches.SwipeInput{PetID: f.petA.ID, TargetPetID: hidden.ID, Direction: matches.DirectionRight})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	got, err := f.svc.List(ctx, f.user1, false)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPotentialExcludesSwiped(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	before, err := f.svc.Potential(ctx, f.user1)
	require.NoError(t, err)
	assert.Len(t, before, 2)

	_, err = f.svc.Swipe(ctx, f.user1, matches.SwipeInput{PetID: f.petA.ID, TargetPetID: f.petB.ID, Direction: matches.DirectionLeft})
	require.NoError(t, err)

	after, err := f.svc.Potential(ctx, f.user1)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, f.petC.ID, after[0].ID)
}
