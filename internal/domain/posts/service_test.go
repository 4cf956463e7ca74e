package posts_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pet-social/internal/adapters/storage/memory"
	"pet-social/internal/domain/pets"
	"pet-social/internal/domain/posts"
	"pet-social/internal/platform/apperr"
	"pet-social/internal/ports/notify"
)

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) Notify(ctx context.Context, userID int64, p notify.Payload) {
	m.Called(userID, p.Kind)
}

type fixture struct {
	store *memory.Store
	svc   *posts.Service
	n     *mockNotifier
	pet   pets.Pet
}

const (
	ownerID = int64(1)
	fanID   = int64(2)
)

func setup(t *testing.T) fixture {
	t.Helper()
	store := memory.New()
	pet, err := store.Pets().Create(context.Background(), pets.Pet{OwnerID: ownerID, Name: "Rex", IsPublic: true})
	require.NoError(t, err)
	n := &mockNotifier{}
	return fixture{store: store, svc: posts.NewService(store.Posts(), store.Pets(), n), n: n, pet: pet}
}

func TestCreateRequiresOwnedPet(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, fanID, posts.CreateInput{PetID: f.pet.ID, ImageURL: "x.jpg"})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = f.svc.Create(ctx, ownerID, posts.CreateInput{PetID: 999, ImageURL: "x.jpg"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = f.svc.Create(ctx, ownerID, posts.CreateInput{PetID: f.pet.ID})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	p, err := f.svc.Create(ctx, ownerID, posts.CreateInput{PetID: f.pet.ID, ImageURL: "x.jpg", Caption: " hi "})
	require.NoError(t, err)
	assert.Equal(t, "hi", p.Caption)
	assert.Zero(t, p.LikesCount)
}

func TestLikeNotifiesOwnerAndCounts(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	p, err := f.svc.Create(ctx, ownerID, posts.CreateInput{PetID: f.pet.ID, ImageURL: "x.jpg"})
	require.NoError(t, err)

	f.n.On("Notify", ownerID, notify.KindLike).Once()

	got, err := f.svc.Like(ctx, fanID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.LikesCount)

	// like propio: sin notificación
	got, err = f.svc.Like(ctx, ownerID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.LikesCount)

	_, err = f.svc.Like(ctx, fanID, p.ID)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	got, err = f.svc.Unlike(ctx, fanID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.LikesCount)

	_, err = f.svc.Unlike(ctx, fanID, p.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	f.n.AssertExpectations(t)
}

func TestCommentAndDeletePermissions(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	p, err := f.svc.Create(ctx, ownerID, posts.CreateInput{PetID: f.pet.ID, ImageURL: "x.jpg"})
	require.NoError(t, err)

	f.n.On("Notify", ownerID, notify.KindComment).Twice()

	c1, err := f.svc.Comment(ctx, fanID, p.ID, "lindo!")
	require.NoError(t, err)
	c2, err := f.svc.Comment(ctx, fanID, p.ID, "otro")
	require.NoError(t, err)

	_, err = f.svc.Comment(ctx, fanID, p.ID, "   ")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	assert.ErrorIs(t, f.svc.DeleteComment(ctx, c1.ID, 3), apperr.ErrForbidden)
	require.NoError(t, f.svc.DeleteComment(ctx, c1.ID, fanID))
	require.NoError(t, f.svc.DeleteComment(ctx, c2.ID, ownerID))

	got, err := f.svc.Get(ctx, p.ID, fanID)
	require.NoError(t, err)
	assert.Zero(t, got.CommentsCount)
	f.n.AssertExpectations(t)
}

func TestFeedPagination(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	ids := make([]int64, 0, 5)
	for i := 0; i < 5; i++ {
		p, err := f.svc.Create(ctx, ownerID, posts.CreateInput{PetID: f.pet.ID, ImageURL: "x.jpg"})
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	page, err := f.svc.Feed(ctx, ownerID, 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ids[3], page[0].ID)
	assert.Equal(t, ids[2], page[1].ID)

	empty, err := f.svc.Feed(ctx, ownerID, 10, 50)
	require.NoError(t, err)
	assert.Empty(t, empty)

	// el fan no sigue a nadie todavía
	none, err := f.svc.Feed(ctx, fanID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = f.store.Follows().Create(ctx, fanID, f.pet.ID)
	require.NoError(t, err)
	all, err := f.svc.Feed(ctx, fanID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestUpdateAndDeleteOwnerOnly(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	p, err := f.svc.Create(ctx, ownerID, posts.CreateInput{PetID: f.pet.ID, ImageURL: "x.jpg", Location: "BA"})
	require.NoError(t, err)

	caption := "nuevo"
	_, err = f.svc.Update(ctx, p.ID, fanID, posts.Patch{Caption: &caption})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	upd, err := f.svc.Update(ctx, p.ID, ownerID, posts.Patch{Caption: &caption})
	require.NoError(t, err)
	assert.Equal(t, "nuevo", upd.Caption)
	assert.Equal(t, "BA", upd.Location)

	assert.ErrorIs(t, f.svc.Delete(ctx, p.ID, fanID), apperr.ErrForbidden)
	require.NoError(t, f.svc.Delete(ctx, p.ID, ownerID))
	_, err = f.svc.Get(ctx, p.ID, ownerID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestPrivatePetPostsHiddenFromStrangers(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	p, err := f.svc.Create(ctx, ownerID, posts.CreateInput{PetID: f.pet.ID, ImageURL: "x.jpg"})
	require.NoError(t, err)
	_, err = f.store.Follows().Create(ctx, fanID, f.pet.ID)
	require.NoError(t, err)

	// la mascota pasa a privada con el follow ya hecho
	private := false
	_, err = f.store.Pets().Update(ctx, f.pet.ID, pets.Patch{IsPublic: &private})
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, p.ID, fanID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = f.svc.ListByPet(ctx, f.pet.ID, fanID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = f.svc.Like(ctx, fanID, p.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = f.svc.Comment(ctx, fanID, p.ID, "hola")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = f.svc.Likes(ctx, p.ID, fanID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = f.svc.Comments(ctx, p.ID, fanID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	byUser, err := f.svc.ListByUser(ctx, ownerID, fanID)
	require.NoError(t, err)
	assert.Empty(t, byUser)
	feed, err := f.svc.Feed(ctx, fanID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, feed)

	// el dueño sigue viendo todo
	own, err := f.svc.ListByPet(ctx, f.pet.ID, ownerID)
	require.NoError(t, err)
	assert.Len(t, own, 1)
	mine, err := f.svc.ListByUser(ctx, ownerID, ownerID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	ownFeed, err := f.svc.Feed(ctx, ownerID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, ownFeed, 1)
	f.n.AssertExpectations(t)
}
