package memory

import (
	"context"
	"slices"

	"pet-social/internal/domain/matches"
	"pet-social/internal/domain/pets"
	"pet-social/internal/platform/apperr"
)

type matchRepo struct{ s *Store }

func (r *matchRepo) Create(ctx context.Context, m matches.Match) (matches.Match, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m = m.Normalized()
	key := m.Pair().Key(m.UserID)
	if _, exists := r.s.matchKey[key]; exists {
		return matches.Match{}, apperr.ErrConflict
	}
	m.ID = r.s.nextID("matches")
	m.CreatedAt = r.s.now()
	r.s.matches[m.ID] = m
	r.s.matchKey[key] = m.ID
	return m, nil
}

func (r *matchRepo) GetByID(ctx context.Context, id int64) (matches.Match, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.matches[id]
	if !ok {
		return matches.Match{}, apperr.ErrNotFound
	}
	return m, nil
}

func (r *matchRepo) Get(ctx context.Context, userID, petA, petB int64) (matches.Match, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.matchKey[matches.NewPair(petA, petB).Key(userID)]
	if !ok {
		return matches.Match{}, apperr.ErrNotFound
	}
	return r.s.matches[id], nil
}

func (r *matchRepo) ListByUser(ctx context.Context, userID int64) ([]matches.Match, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]matches.Match, 0)
	for _, m := range r.s.matches {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	slices.SortFunc(out, func(a, b matches.Match) int { return cmpID(a.ID, b.ID) })
	return out, nil
}

func (r *matchRepo) ListPotential(ctx context.Context, userID int64) ([]pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	own := make(map[int64]struct{})
	for _, p := range r.s.pets {
		if p.OwnerID == userID {
			own[p.ID] = struct{}{}
		}
	}
	seen := make(map[int64]struct{})
	for _, m := range r.s.matches {
		_, a := own[m.PetID1]
		_, b := own[m.PetID2]
		if a || b {
			seen[m.PetID1] = struct{}{}
			seen[m.PetID2] = struct{}{}
		}
	}
	return r.s.filterPets(func(p pets.Pet) bool {
		if !p.IsPublic || p.OwnerID == userID {
			return false
		}
		_, done := seen[p.ID]
		return !done
	}), nil
}

func (r *matchRepo) MarkMutual(ctx context.Context, ids ...int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, id := range ids {
		if _, ok := r.s.matches[id]; !ok {
			return apperr.ErrNotFound
		}
	}
	for _, id := range ids {
		m := r.s.matches[id]
		m.IsMatch = true
		r.s.matches[id] = m
	}
	return nil
}
