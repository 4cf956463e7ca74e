package memory

import (
	"context"
	"slices"

	"pet-social/internal/domain/posts"
	"pet-social/internal/platform/apperr"
)

type postRepo struct{ s *Store }

func (r *postRepo) Create(ctx context.Context, p posts.Post) (posts.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p = p.WithDefaults()
	p.ID = r.s.nextID("posts")
	p.CreatedAt = r.s.now()
	r.s.posts[p.ID] = p
	return p, nil
}

func (r *postRepo) GetByID(ctx context.Context, id int64) (posts.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.posts[id]
	if !ok {
		return posts.Post{}, apperr.ErrNotFound
	}
	return p, nil
}

func (r *postRepo) ListByPet(ctx context.Context, petID int64) ([]posts.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.filterPosts(func(p posts.Post) bool { return p.PetID == petID }), nil
}

func (r *postRepo) ListByUser(ctx context.Context, userID int64) ([]posts.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.filterPosts(func(p posts.Post) bool { return p.UserID == userID }), nil
}

func (r *postRepo) ListFeed(ctx context.Context, userID int64) ([]posts.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	relevant := make(map[int64]struct{})
	for _, p := range r.s.pets {
		if p.OwnerID == userID {
			relevant[p.ID] = struct{}{}
		}
	}
	for _, f := range r.s.follows {
		if f.FollowerID == userID {
			relevant[f.FollowedPetID] = struct{}{}
		}
	}
	return r.s.filterPosts(func(p posts.Post) bool {
		_, ok := relevant[p.PetID]
		return ok
	}), nil
}

func (r *postRepo) Update(ctx context.Context, id int64, pa posts.Patch) (posts.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.posts[id]
	if !ok {
		return posts.Post{}, apperr.ErrNotFound
	}
	pa.Apply(&p)
	r.s.posts[id] = p
	return p, nil
}

func (r *postRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.s.posts, id)
	for k, l := range r.s.likes {
		if l.PostID == id {
			delete(r.s.likes, k)
		}
	}
	for k, c := range r.s.comments {
		if c.PostID == id {
			delete(r.s.comments, k)
		}
	}
	return nil
}

func (r *postRepo) CreateLike(ctx context.Context, userID, postID int64) (posts.Like, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := pairKey(userID, postID)
	if _, exists := r.s.likes[key]; exists {
		return posts.Like{}, apperr.ErrConflict
	}
	l := posts.Like{
		ID:        r.s.nextID("likes"),
		UserID:    userID,
		PostID:    postID,
		CreatedAt: r.s.now(),
	}
	r.s.likes[key] = l
	r.s.bumpLikes(postID, +1)
	return l, nil
}

func (r *postRepo) GetLike(ctx context.Context, userID, postID int64) (posts.Like, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	l, ok := r.s.likes[pairKey(userID, postID)]
	if !ok {
		return posts.Like{}, apperr.ErrNotFound
	}
	return l, nil
}

func (r *postRepo) DeleteLike(ctx context.Context, userID, postID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := pairKey(userID, postID)
	if _, ok := r.s.likes[key]; !ok {
		return false, nil
	}
	delete(r.s.likes, key)
	r.s.bumpLikes(postID, -1)
	return true, nil
}

func (r *postRepo) ListLikes(ctx context.Context, postID int64) ([]posts.Like, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]posts.Like, 0)
	for _, l := range r.s.likes {
		if l.PostID == postID {
			out = append(out, l)
		}
	}
	slices.SortFunc(out, func(a, b posts.Like) int { return cmpID(a.ID, b.ID) })
	return out, nil
}

func (r *postRepo) CreateComment(ctx context.Context, c posts.Comment) (posts.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c.ID = r.s.nextID("comments")
	c.CreatedAt = r.s.now()
	r.s.comments[c.ID] = c
	r.s.bumpComments(c.PostID, +1)
	return c, nil
}

func (r *postRepo) GetComment(ctx context.Context, id int64) (posts.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.comments[id]
	if !ok {
		return posts.Comment{}, apperr.ErrNotFound
	}
	return c, nil
}

func (r *postRepo) ListComments(ctx context.Context, postID int64) ([]posts.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]posts.Comment, 0)
	for _, c := range r.s.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b posts.Comment) int { return cmpID(a.ID, b.ID) })
	return out, nil
}

func (r *postRepo) DeleteComment(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.comments[id]
	if !ok {
		return apperr.ErrNotFound
	}
	delete(r.s.comments, id)
	r.s.bumpComments(c.PostID, -1)
	return nil
}

// filterPosts ordena más nuevo primero; empate por id desc.
func (s *Store) filterPosts(keep func(posts.Post) bool) []posts.Post {
	out := make([]posts.Post, 0)
	for _, p := range s.posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b posts.Post) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmpID(b.ID, a.ID)
	})
	return out
}

// Los contadores nunca bajan de 0. Un like sobre un post inexistente no falla.
func (s *Store) bumpLikes(postID int64, delta int) {
	p, ok := s.posts[postID]
	if !ok {
		return
	}
	p.LikesCount = max(p.LikesCount+delta, 0)
	s.posts[postID] = p
}

func (s *Store) bumpComments(postID int64, delta int) {
	p, ok := s.posts[postID]
	if !ok {
		return
	}
	p.CommentsCount = max(p.CommentsCount+delta, 0)
	s.posts[postID] = p
}
