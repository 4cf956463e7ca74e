package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-social/internal/domain/posts"
	"pet-social/internal/platform/apperr"
	"pet-social/internal/ports/storage"
	"pet-social/internal/ports/storage/storagetest"
)

func TestStoreContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store { return New() })
}

func TestConcurrentLikesKeepCounterExact(t *testing.T) {
	s := New()
	ctx := context.Background()
	post, err := s.Posts().Create(ctx, posts.Post{PetID: 1, UserID: 1})
	require.NoError(t, err)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(uid int64) {
			defer wg.Done()
			_, _ = s.Posts().CreateLike(ctx, uid, post.ID)
			// duplicado: debe fallar sin mover el contador
			_, err := s.Posts().CreateLike(ctx, uid, post.ID)
			assert.ErrorIs(t, err, apperr.ErrConflict)
		}(int64(i + 1))
	}
	wg.Wait()

	got, err := s.Posts().GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, n, got.LikesCount)
}

func TestReturnedPetDoesNotAliasState(t *testing.T) {
	s := New()
	ctx := context.Background()
	p, err := s.Pets().Create(ctx, petWithPhotos("a.jpg"))
	require.NoError(t, err)

	p.Photos[0] = "mutated.jpg"

	again, err := s.Pets().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg"}, again.Photos)
}
