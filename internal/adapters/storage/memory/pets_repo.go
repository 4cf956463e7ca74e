package memory

import (
	"context"
	"encoding/json"
	"slices"
	"time"

	"pet-social/internal/domain/pets"
	"pet-social/internal/platform/apperr"
	"pet-social/internal/ports/storage"
)

type petRepo struct{ s *Store }

// clonePet evita que el caller comparta slices con el estado interno.
func clonePet(p pets.Pet) pets.Pet {
	p.Photos = slices.Clone(p.Photos)
	if p.Photos == nil {
		p.Photos = []string{}
	}
	if p.Recommendations != nil {
		p.Recommendations = slices.Clone(p.Recommendations)
	}
	return p
}

func normalizeDates(p pets.Pet) pets.Pet {
	for _, t := range []**time.Time{&p.LastVaccinationDate, &p.NextCheckupDate} {
		if *t != nil {
			v := storage.Timestamp(**t)
			*t = &v
		}
	}
	return p
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p = normalizeDates(clonePet(p.WithDefaults()))
	p.ID = r.s.nextID("pets")
	p.CreatedAt = r.s.now()
	r.s.pets[p.ID] = p
	return clonePet(p), nil
}

func (r *petRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.pets[id]
	if !ok {
		return pets.Pet{}, apperr.ErrNotFound
	}
	return clonePet(p), nil
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerID int64) ([]pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.filterPets(func(p pets.Pet) bool { return p.OwnerID == ownerID }), nil
}

func (r *petRepo) ListPublic(ctx context.Context) ([]pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.filterPets(func(p pets.Pet) bool { return p.IsPublic }), nil
}

func (r *petRepo) Update(ctx context.Context, id int64, pa pets.Patch) (pets.Pet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.pets[id]
	if !ok {
		return pets.Pet{}, apperr.ErrNotFound
	}
	pa.Apply(&p)
	p = normalizeDates(p)
	r.s.pets[id] = clonePet(p)
	return clonePet(p), nil
}

func (r *petRepo) SetRecommendations(ctx context.Context, id int64, doc json.RawMessage) (pets.Pet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.pets[id]
	if !ok {
		return pets.Pet{}, apperr.ErrNotFound
	}
	p.Recommendations = slices.Clone(doc)
	r.s.pets[id] = p
	return clonePet(p), nil
}

// filterPets devuelve por id ascendente. Requiere el lock tomado.
func (s *Store) filterPets(keep func(pets.Pet) bool) []pets.Pet {
	out := make([]pets.Pet, 0)
	for _, p := range s.pets {
		if keep(p) {
			out = append(out, clonePet(p))
		}
	}
	slices.SortFunc(out, func(a, b pets.Pet) int { return cmpID(a.ID, b.ID) })
	return out
}

func cmpID(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
