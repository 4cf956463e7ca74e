package memory

import (
	"context"
	"slices"

	"pet-social/internal/domain/follows"
	"pet-social/internal/platform/apperr"
)

type followRepo struct{ s *Store }

func (r *followRepo) Create(ctx context.Context, followerID, petID int64) (follows.Follow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := pairKey(followerID, petID)
	if _, exists := r.s.follows[key]; exists {
		return follows.Follow{}, apperr.ErrConflict
	}
	f := follows.Follow{
		ID:            r.s.nextID("follows"),
		FollowerID:    followerID,
		FollowedPetID: petID,
		CreatedAt:     r.s.now(),
	}
	r.s.follows[key] = f
	return f, nil
}

func (r *followRepo) Get(ctx context.Context, followerID, petID int64) (follows.Follow, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	f, ok := r.s.follows[pairKey(followerID, petID)]
	if !ok {
		return follows.Follow{}, apperr.ErrNotFound
	}
	return f, nil
}

func (r *followRepo) Delete(ctx context.Context, followerID, petID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := pairKey(followerID, petID)
	if _, ok := r.s.follows[key]; !ok {
		return false, nil
	}
	delete(r.s.follows, key)
	return true, nil
}

func (r *followRepo) ListByFollower(ctx context.Context, followerID int64) ([]follows.Follow, error) {
	return r.list(func(f follows.Follow) bool { return f.FollowerID == followerID }), nil
}

func (r *followRepo) ListByPet(ctx context.Context, petID int64) ([]follows.Follow, error) {
	return r.list(func(f follows.Follow) bool { return f.FollowedPetID == petID }), nil
}

func (r *followRepo) list(keep func(follows.Follow) bool) []follows.Follow {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]follows.Follow, 0)
	for _, f := range r.s.follows {
		if keep(f) {
			out = append(out, f)
		}
	}
	slices.SortFunc(out, func(a, b follows.Follow) int { return cmpID(a.ID, b.ID) })
	return out
}
