// Package storagetest contiene la batería de contrato que cualquier
// storage.Store debe pasar. Cada backend la ejecuta desde su propio _test.go.
package storagetest

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-social/internal/domain/follows"
	"pet-social/internal/domain/matches"
	"pet-social/internal/domain/medical"
	"pet-social/internal/domain/pets"
	"pet-social/internal/domain/posts"
	"pet-social/internal/domain/users"
	"pet-social/internal/platform/apperr"
	"pet-social/internal/ports/storage"
)

// Factory devuelve un store vacío y aislado para cada subtest.
type Factory func(t *testing.T) storage.Store

func Run(t *testing.T, newStore Factory) {
	t.Run("users unique email and username", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("user update merges patch", func(t *testing.T) { testUserUpdate(t, newStore(t)) })
	t.Run("pet create defaults and owner listing", func(t *testing.T) { testPets(t, newStore(t)) })
	t.Run("empty patch is identity", func(t *testing.T) { testEmptyPatch(t, newStore(t)) })
	t.Run("update missing id is not found", func(t *testing.T) { testUpdateMissing(t, newStore(t)) })
	t.Run("dangling foreign keys accepted", func(t *testing.T) { testDangling(t, newStore(t)) })
	t.Run("like round trip and counters", func(t *testing.T) { testLikes(t, newStore(t)) })
	t.Run("comment counters", func(t *testing.T) { testComments(t, newStore(t)) })
	t.Run("delete post cascades", func(t *testing.T) { testDeletePost(t, newStore(t)) })
	t.Run("follows unique pair", func(t *testing.T) { testFollows(t, newStore(t)) })
	t.Run("match lookup is order independent", func(t *testing.T) { testMatchSymmetry(t, newStore(t)) })
	t.Run("mutual match promotes both rows", func(t *testing.T) { testMutual(t, newStore(t)) })
	t.Run("potential matches exclusion", func(t *testing.T) { testPotential(t, newStore(t)) })
	t.Run("feed owned and followed newest first", func(t *testing.T) { testFeed(t, newStore(t)) })
	t.Run("recommendations blob round trip", func(t *testing.T) { testRecommendations(t, newStore(t)) })
	t.Run("pet patch keeps recommendations", func(t *testing.T) { testPatchKeepsRecommendations(t, newStore(t)) })
	t.Run("counters never below zero", func(t *testing.T) { testCounterFloor(t, newStore(t)) })
	t.Run("medical records", func(t *testing.T) { testMedical(t, newStore(t)) })
}

func mustUser(t *testing.T, s storage.Store, name string) users.User {
	t.Helper()
	u, err := s.Users().Create(context.Background(), users.User{
		Email:    name + "@example.com",
		Username: name,
		Password: "hash",
		Name:     name,
	})
	require.NoError(t, err)
	return u
}

func mustPet(t *testing.T, s storage.Store, owner int64, name string, public bool) pets.Pet {
	t.Helper()
	p, err := s.Pets().Create(context.Background(), pets.Pet{
		OwnerID:  owner,
		Name:     name,
		Species:  "dog",
		IsPublic: public,
	})
	require.NoError(t, err)
	return p
}

func mustPost(t *testing.T, s storage.Store, pet pets.Pet, caption string) posts.Post {
	t.Helper()
	p, err := s.Posts().Create(context.Background(), posts.Post{
		PetID:    pet.ID,
		UserID:   pet.OwnerID,
		ImageURL: "https://img/" + caption,
		Caption:  caption,
	})
	require.NoError(t, err)
	return p
}

func testUsers(t *testing.T, s storage.Store) {
	ctx := context.Background()
	u := mustUser(t, s, "ana")
	assert.NotZero(t, u.ID)
	assert.Equal(t, users.RoleUser, u.Role)
	assert.False(t, u.CreatedAt.IsZero())

	byEmail, err := s.Users().GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, u, byEmail)

	byName, err := s.Users().GetByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, u, byName)

	_, err = s.Users().Create(ctx, users.User{Email: "ana@example.com", Username: "other", Password: "x"})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = s.Users().Create(ctx, users.User{Email: "other@example.com", Username: "ana", Password: "x"})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = s.Users().GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = s.Users().GetByID(ctx, u.ID+1000)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func testUserUpdate(t *testing.T, s storage.Store) {
	ctx := context.Background()
	u := mustUser(t, s, "bob")
	bio := "likes long walks"
	got, err := s.Users().Update(ctx, u.ID, users.Patch{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, bio, got.Bio)
	assert.Equal(t, u.Name, got.Name)
	assert.Equal(t, u.Email, got.Email)

	again, err := s.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func testPets(t *testing.T, s storage.Store) {
	ctx := context.Background()
	owner := mustUser(t, s, "carla")
	p := mustPet(t, s, owner.ID, "Rex", true)

	assert.NotZero(t, p.ID)
	assert.Equal(t, owner.ID, p.OwnerID)
	assert.Equal(t, []string{}, p.Photos)
	assert.Equal(t, pets.GenderUnknown, p.Gender)
	assert.Nil(t, p.Recommendations)

	hidden := mustPet(t, s, owner.ID, "Shy", false)

	list, err := s.Pets().ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, p.ID, list[0].ID)
	assert.Equal(t, hidden.ID, list[1].ID)

	public, err := s.Pets().ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, p.ID, public[0].ID)

	photos := []string{"a.jpg", "b.jpg"}
	vacc := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	upd, err := s.Pets().Update(ctx, p.ID, pets.Patch{Photos: &photos, LastVaccinationDate: &vacc})
	require.NoError(t, err)
	assert.Equal(t, photos, upd.Photos)
	require.NotNil(t, upd.LastVaccinationDate)
	assert.True(t, vacc.Equal(*upd.LastVaccinationDate))
	assert.Equal(t, "Rex", upd.Name)

	stored, err := s.Pets().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, upd, stored)
}

func testEmptyPatch(t *testing.T, s storage.Store) {
	ctx := context.Background()
	u := mustUser(t, s, "dora")
	p := mustPet(t, s, u.ID, "Milo", true)
	post := mustPost(t, s, p, "hello")
	rec, err := s.Medical().Create(ctx, medical.Record{
		PetID: p.ID, Type: "checkup", Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	gotU, err := s.Users().Update(ctx, u.ID, users.Patch{})
	require.NoError(t, err)
	assert.Equal(t, u, gotU)

	gotP, err := s.Pets().Update(ctx, p.ID, pets.Patch{})
	require.NoError(t, err)
	assert.Equal(t, p, gotP)

	gotPost, err := s.Posts().Update(ctx, post.ID, posts.Patch{})
	require.NoError(t, err)
	assert.Equal(t, post, gotPost)

	gotRec, err := s.Medical().Update(ctx, rec.ID, medical.Patch{})
	require.NoError(t, err)
	assert.Equal(t, rec, gotRec)
}

func testUpdateMissing(t *testing.T, s storage.Store) {
	ctx := context.Background()
	name := "ghost"
	_, err := s.Users().Update(ctx, 999, users.Patch{Name: &name})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = s.Pets().Update(ctx, 999, pets.Patch{Name: &name})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = s.Posts().Update(ctx, 999, posts.Patch{Caption: &name})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = s.Medical().Update(ctx, 999, medical.Patch{Notes: &name})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = s.Pets().SetRecommendations(ctx, 999, json.RawMessage(`{}`))
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.ErrorIs(t, s.Posts().Delete(ctx, 999), apperr.ErrNotFound)
	assert.ErrorIs(t, s.Posts().DeleteComment(ctx, 999), apperr.ErrNotFound)
	assert.ErrorIs(t, s.Medical().Delete(ctx, 999), apperr.ErrNotFound)
	assert.ErrorIs(t, s.Matches().MarkMutual(ctx, 999), apperr.ErrNotFound)
}

func testDangling(t *testing.T, s storage.Store) {
	ctx := context.Background()
	p, err := s.Pets().Create(ctx, pets.Pet{OwnerID: 4242, Name: "Orphan", IsPublic: true})
	require.NoError(t, err)
	assert.Equal(t, int64(4242), p.OwnerID)

	_, err = s.Posts().Create(ctx, posts.Post{PetID: 777, UserID: 888, Caption: "x"})
	require.NoError(t, err)
	_, err = s.Follows().Create(ctx, 555, 666)
	require.NoError(t, err)
}

func testLikes(t *testing.T, s storage.Store) {
	ctx := context.Background()
	owner := mustUser(t, s, "eva")
	p := mustPet(t, s, owner.ID, "Luna", true)
	post := mustPost(t, s, p, "sun")
	assert.Zero(t, post.LikesCount)
	assert.Zero(t, post.CommentsCount)

	likers := make([]users.User, 0, 4)
	for _, n := range []string{"l1", "l2", "l3", "l4"} {
		likers = append(likers, mustUser(t, s, n))
	}
	for _, u := range likers {
		l, err := s.Posts().CreateLike(ctx, u.ID, post.ID)
		require.NoError(t, err)
		assert.Equal(t, u.ID, l.UserID)

		got, err := s.Posts().GetLike(ctx, u.ID, post.ID)
		require.NoError(t, err)
		assert.Equal(t, l, got)
	}

	_, err := s.Posts().CreateLike(ctx, likers[0].ID, post.ID)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	for _, u := range likers[:2] {
		ok, err := s.Posts().DeleteLike(ctx, u.ID, post.ID)
		require.NoError(t, err)
		assert.True(t, ok)
		_, err = s.Posts().GetLike(ctx, u.ID, post.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	}

	ok, err := s.Posts().DeleteLike(ctx, likers[0].ID, post.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := s.Posts().GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.LikesCount)

	likes, err := s.Posts().ListLikes(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, likes, 2)
}

func testComments(t *testing.T, s storage.Store) {
	ctx := context.Background()
	owner := mustUser(t, s, "fede")
	p := mustPet(t, s, owner.ID, "Toby", true)
	post := mustPost(t, s, p, "park")

	c1, err := s.Posts().CreateComment(ctx, posts.Comment{PostID: post.ID, UserID: owner.ID, Content: "first"})
	require.NoError(t, err)
	_, err = s.Posts().CreateComment(ctx, posts.Comment{PostID: post.ID, UserID: owner.ID, Content: "second"})
	require.NoError(t, err)

	got, err := s.Posts().GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CommentsCount)

	list, err := s.Posts().ListComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Content)

	require.NoError(t, s.Posts().DeleteComment(ctx, c1.ID))
	_, err = s.Posts().GetComment(ctx, c1.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	got, err = s.Posts().GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CommentsCount)
}

func testDeletePost(t *testing.T, s storage.Store) {
	ctx := context.Background()
	owner := mustUser(t, s, "gina")
	p := mustPet(t, s, owner.ID, "Kira", true)
	post := mustPost(t, s, p, "bye")
	_, err := s.Posts().CreateLike(ctx, owner.ID, post.ID)
	require.NoError(t, err)
	c, err := s.Posts().CreateComment(ctx, posts.Comment{PostID: post.ID, UserID: owner.ID, Content: "x"})
	require.NoError(t, err)

	require.NoError(t, s.Posts().Delete(ctx, post.ID))

	_, err = s.Posts().GetByID(ctx, post.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = s.Posts().GetLike(ctx, owner.ID, post.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = s.Posts().GetComment(ctx, c.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func testFollows(t *testing.T, s storage.Store) {
	ctx := context.Background()
	owner := mustUser(t, s, "hugo")
	fan := mustUser(t, s, "ines")
	p := mustPet(t, s, owner.ID, "Nala", true)

	f, err := s.Follows().Create(ctx, fan.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, fan.ID, f.FollowerID)
	assert.Equal(t, p.ID, f.FollowedPetID)

	_, err = s.Follows().Create(ctx, fan.ID, p.ID)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	got, err := s.Follows().Get(ctx, fan.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, f, got)

	byPet, err := s.Follows().ListByPet(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []follows.Follow{f}, byPet)

	byFan, err := s.Follows().ListByFollower(ctx, fan.ID)
	require.NoError(t, err)
	assert.Equal(t, []follows.Follow{f}, byFan)

	ok, err := s.Follows().Delete(ctx, fan.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.Follows().Delete(ctx, fan.ID, p.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = s.Follows().Get(ctx, fan.ID, p.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func testMatchSymmetry(t *testing.T, s storage.Store) {
	ctx := context.Background()
	u1 := mustUser(t, s, "juan")
	u2 := mustUser(t, s, "kim")
	a := mustPet(t, s, u1.ID, "A", true)
	b := mustPet(t, s, u2.ID, "B", true)

	m, err := s.Matches().Create(ctx, matches.Match{
		UserID: u1.ID, PetID1: b.ID, PetID2: a.ID, SwipeDirection: matches.DirectionRight,
	})
	require.NoError(t, err)
	assert.Less(t, m.PetID1, m.PetID2)
	assert.False(t, m.IsMatch)

	swapped, err := s.Matches().Get(ctx, u1.ID, b.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, m, swapped)

	straight, err := s.Matches().Get(ctx, u1.ID, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, m, straight)

	byID, err := s.Matches().GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m, byID)

	_, err = s.Matches().Create(ctx, matches.Match{
		UserID: u1.ID, PetID1: a.ID, PetID2: b.ID, SwipeDirection: matches.DirectionLeft,
	})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = s.Matches().Get(ctx, u2.ID, a.ID, b.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func testMutual(t *testing.T, s storage.Store) {
	ctx := context.Background()
	u1 := mustUser(t, s, "leo")
	u2 := mustUser(t, s, "mia")
	a := mustPet(t, s, u1.ID, "A", true)
	b := mustPet(t, s, u2.ID, "B", true)

	m1, err := s.Matches().Create(ctx, matches.Match{
		UserID: u1.ID, PetID1: a.ID, PetID2: b.ID, SwipeDirection: matches.DirectionRight,
	})
	require.NoError(t, err)
	m2, err := s.Matches().Create(ctx, matches.Match{
		UserID: u2.ID, PetID1: b.ID, PetID2: a.ID, SwipeDirection: matches.DirectionRight,
	})
	require.NoError(t, err)

	require.NoError(t, s.Matches().MarkMutual(ctx, m1.ID, m2.ID))

	for _, u := range []users.User{u1, u2} {
		list, err := s.Matches().ListByUser(ctx, u.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.True(t, list[0].IsMatch)
	}
}

func testPotential(t *testing.T, s storage.Store) {
	ctx := context.Background()
	me := mustUser(t, s, "nico")
	other := mustUser(t, s, "olga")
	third := mustUser(t, s, "pablo")

	mine := mustPet(t, s, me.ID, "Mine", true)
	swiped := mustPet(t, s, other.ID, "Swiped", true)
	swipedByThem := mustPet(t, s, third.ID, "Theirs", true)
	fresh := mustPet(t, s, other.ID, "Fresh", true)
	mustPet(t, s, other.ID, "Private", false)
	unrelatedA := mustPet(t, s, third.ID, "UA", true)

	// Match iniciado por mí.
	_, err := s.Matches().Create(ctx, matches.Match{
		UserID: me.ID, PetID1: mine.ID, PetID2: swiped.ID, SwipeDirection: matches.DirectionLeft,
	})
	require.NoError(t, err)
	// Match iniciado por otro usuario sobre mi mascota.
	_, err = s.Matches().Create(ctx, matches.Match{
		UserID: third.ID, PetID1: swipedByThem.ID, PetID2: mine.ID, SwipeDirection: matches.DirectionRight,
	})
	require.NoError(t, err)
	// Match entre terceros: no afecta.
	_, err = s.Matches().Create(ctx, matches.Match{
		UserID: other.ID, PetID1: fresh.ID, PetID2: unrelatedA.ID, SwipeDirection: matches.DirectionRight,
	})
	require.NoError(t, err)

	got, err := s.Matches().ListPotential(ctx, me.ID)
	require.NoError(t, err)
	ids := make([]int64, 0, len(got))
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int64{fresh.ID, unrelatedA.ID}, ids)
}

func testFeed(t *testing.T, s storage.Store) {
	ctx := context.Background()
	u := mustUser(t, s, "quin")
	other := mustUser(t, s, "rosa")
	p1 := mustPet(t, s, u.ID, "P1", true)
	p2 := mustPet(t, s, other.ID, "P2", true)
	p3 := mustPet(t, s, other.ID, "P3", true)

	_, err := s.Follows().Create(ctx, u.ID, p2.ID)
	require.NoError(t, err)

	first := mustPost(t, s, p1, "one")
	unrelated := mustPost(t, s, p3, "three")
	second := mustPost(t, s, p2, "two")
	third := mustPost(t, s, p1, "four")

	feed, err := s.Posts().ListFeed(ctx, u.ID)
	require.NoError(t, err)
	ids := make([]int64, 0, len(feed))
	for _, p := range feed {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int64{third.ID, second.ID, first.ID}, ids)
	assert.NotContains(t, ids, unrelated.ID)

	empty, err := s.Posts().ListFeed(ctx, 9999)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func testRecommendations(t *testing.T, s storage.Store) {
	ctx := context.Background()
	u := mustUser(t, s, "sol")
	p := mustPet(t, s, u.ID, "Bingo", true)

	doc := json.RawMessage(`{"trainingPlan":{"goals":["sit"]}}`)
	got, err := s.Pets().SetRecommendations(ctx, p.ID, doc)
	require.NoError(t, err)
	assert.JSONEq(t, string(doc), string(got.Recommendations))

	again, err := s.Pets().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.JSONEq(t, string(doc), string(again.Recommendations))
	assert.Equal(t, p.Name, again.Name)
}

func testPatchKeepsRecommendations(t *testing.T, s storage.Store) {
	ctx := context.Background()
	u := mustUser(t, s, "gus")
	p := mustPet(t, s, u.ID, "Toby", true)

	doc := json.RawMessage(`{"trainingPlan":{"goals":["stay"]}}`)
	_, err := s.Pets().SetRecommendations(ctx, p.ID, doc)
	require.NoError(t, err)

	bio := "new bio"
	got, err := s.Pets().Update(ctx, p.ID, pets.Patch{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, bio, got.Bio)
	assert.JSONEq(t, string(doc), string(got.Recommendations))

	again, err := s.Pets().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, bio, again.Bio)
	assert.Equal(t, p.Name, again.Name)
	assert.JSONEq(t, string(doc), string(again.Recommendations))
}

// testCounterFloor: likes/comments creados antes que su post (el store no
// valida FKs) no deben dejar el contador en negativo al borrarse.
func testCounterFloor(t *testing.T, s storage.Store) {
	ctx := context.Background()
	_, err := s.Posts().CreateLike(ctx, 50, 1)
	require.NoError(t, err)
	c, err := s.Posts().CreateComment(ctx, posts.Comment{PostID: 1, UserID: 50, Content: "early"})
	require.NoError(t, err)

	post, err := s.Posts().Create(ctx, posts.Post{PetID: 9, UserID: 9, ImageURL: "https://img/late"})
	require.NoError(t, err)
	require.Equal(t, int64(1), post.ID)
	assert.Zero(t, post.LikesCount)
	assert.Zero(t, post.CommentsCount)

	ok, err := s.Posts().DeleteLike(ctx, 50, post.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, s.Posts().DeleteComment(ctx, c.ID))

	got, err := s.Posts().GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.LikesCount)
	assert.Equal(t, 0, got.CommentsCount)
}

func testMedical(t *testing.T, s storage.Store) {
	ctx := context.Background()
	u := mustUser(t, s, "teo")
	p := mustPet(t, s, u.ID, "Pipo", true)

	older, err := s.Medical().Create(ctx, medical.Record{
		PetID: p.ID, Type: "vaccination", Date: time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, []medical.Prescription{}, older.Prescriptions)
	assert.False(t, older.Completed)

	newer, err := s.Medical().Create(ctx, medical.Record{
		PetID: p.ID, Type: "checkup", Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Prescriptions: []medical.Prescription{{Name: "amoxicillin", Dosage: "50 mg", Frequency: "12h", Duration: "7d"}},
	})
	require.NoError(t, err)

	list, err := s.Medical().ListByPet(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
	assert.Equal(t, "amoxicillin", list[0].Prescriptions[0].Name)

	done := true
	upd, err := s.Medical().Update(ctx, older.ID, medical.Patch{Completed: &done})
	require.NoError(t, err)
	assert.True(t, upd.Completed)
	assert.Equal(t, "vaccination", upd.Type)

	require.NoError(t, s.Medical().Delete(ctx, older.ID))
	_, err = s.Medical().GetByID(ctx, older.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
