package memory

import (
	"context"

	"pet-social/internal/domain/users"
	"pet-social/internal/platform/apperr"
)

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, u users.User) (users.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, ex := range r.s.users {
		if ex.Email == u.Email || ex.Username == u.Username {
			return users.User{}, apperr.ErrConflict
		}
	}
	u = u.WithDefaults()
	u.ID = r.s.nextID("users")
	u.CreatedAt = r.s.now()
	r.s.users[u.ID] = u
	return u, nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return users.User{}, apperr.ErrNotFound
	}
	return u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return users.User{}, apperr.ErrNotFound
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return users.User{}, apperr.ErrNotFound
}

func (r *userRepo) Update(ctx context.Context, id int64, p users.Patch) (users.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return users.User{}, apperr.ErrNotFound
	}
	p.Apply(&u)
	r.s.users[id] = u
	return u, nil
}
