package posts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-social/internal/domain/pets"
	"pet-social/internal/platform/apperr"
	"pet-social/internal/ports/notify"
)

const (
	DefaultFeedLimit = 50
	MaxFeedLimit     = 200
)

type Service struct {
	repo     Repository
	pets     pets.Repository
	notifier notify.Notifier
	now      func() time.Time
}

func NewService(repo Repository, petRepo pets.Repository, n notify.Notifier) *Service {
	if n == nil {
		n = notify.Nop{}
	}
	return &Service{repo: repo, pets: petRepo, notifier: n, now: time.Now}
}

type CreateInput struct {
	PetID    int64
	ImageURL string
	Caption  string
	Location string
}

// Create publica en nombre de una mascota propia.
func (s *Service) Create(ctx context.Context, userID int64, in CreateInput) (Post, error) {
	if strings.TrimSpace(in.ImageURL) == "" {
		return Post{}, fmt.Errorf("%w: imageUrl is required", apperr.ErrInvalidInput)
	}
	p, err := s.pets.GetByID(ctx, in.PetID)
	if err != nil {
		return Post{}, fmt.Errorf("pet: %w", err)
	}
	if p.OwnerID != userID {
		return Post{}, apperr.ErrForbidden
	}
	return s.repo.Create(ctx, Post{
		PetID:    in.PetID,
		UserID:   userID,
		ImageURL: strings.TrimSpace(in.ImageURL),
		Caption:  strings.TrimSpace(in.Caption),
		Location: strings.TrimSpace(in.Location),
	})
}

// Get: los posts de una mascota privada solo los ve su dueño.
func (s *Service) Get(ctx context.Context, id, viewerID int64) (Post, error) {
	return s.visible(ctx, id, viewerID)
}

func (s *Service) ListByPet(ctx context.Context, petID, viewerID int64) ([]Post, error) {
	p, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return nil, fmt.Errorf("pet: %w", err)
	}
	if !p.VisibleTo(viewerID) {
		return nil, fmt.Errorf("pet: %w", apperr.ErrNotFound)
	}
	return s.repo.ListByPet(ctx, petID)
}

func (s *Service) ListByUser(ctx context.Context, userID, viewerID int64) ([]Post, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil || userID == viewerID {
		return items, err
	}
	return s.filterVisible(ctx, items, viewerID)
}

// visible devuelve ErrNotFound si el post es de una mascota privada ajena.
func (s *Service) visible(ctx context.Context, id, viewerID int64) (Post, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Post{}, err
	}
	pet, err := s.pets.GetByID(ctx, p.PetID)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return p, nil
	case err != nil:
		return Post{}, err
	case !pet.VisibleTo(viewerID):
		return Post{}, apperr.ErrNotFound
	}
	return p, nil
}

func (s *Service) filterVisible(ctx context.Context, items []Post, viewerID int64) ([]Post, error) {
	seen := map[int64]bool{}
	out := make([]Post, 0, len(items))
	for _, p := range items {
		ok, cached := seen[p.PetID]
		if !cached {
			pet, err := s.pets.GetByID(ctx, p.PetID)
			switch {
			case errors.Is(err, apperr.ErrNotFound):
				ok = true
			case err != nil:
				return nil, err
			default:
				ok = pet.VisibleTo(viewerID)
			}
			seen[p.PetID] = ok
		}
		if ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// Feed pagina sobre el feed completo del store, sin los posts de mascotas
// que pasaron a privadas después del follow.
func (s *Service) Feed(ctx context.Context, userID int64, limit, offset int) ([]Post, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	limit = min(limit, MaxFeedLimit)
	offset = max(offset, 0)

	all, err := s.repo.ListFeed(ctx, userID)
	if err != nil {
		return nil, err
	}
	if all, err = s.filterVisible(ctx, all, userID); err != nil {
		return nil, err
	}
	if offset >= len(all) {
		return []Post{}, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], nil
}

func (s *Service) Update(ctx context.Context, id, userID int64, p Patch) (Post, error) {
	if _, err := s.owned(ctx, id, userID); err != nil {
		return Post{}, err
	}
	return s.repo.Update(ctx, id, p)
}

func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	if _, err := s.owned(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) owned(ctx context.Context, id, userID int64) (Post, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Post{}, err
	}
	if p.UserID != userID {
		return Post{}, apperr.ErrForbidden
	}
	return p, nil
}

// Like devuelve el post con el contador actualizado.
func (s *Service) Like(ctx context.Context, userID, postID int64) (Post, error) {
	p, err := s.visible(ctx, postID, userID)
	if err != nil {
		return Post{}, err
	}
	if _, err := s.repo.CreateLike(ctx, userID, postID); err != nil {
		return Post{}, err
	}
	if p.UserID != userID {
		s.notifier.Notify(ctx, p.UserID, notify.Payload{
			Kind:    notify.KindLike,
			Message: "someone liked your post",
			Data:    map[string]any{"postId": postID, "userId": userID},
			SentAt:  s.now().UTC(),
		})
	}
	return s.repo.GetByID(ctx, postID)
}

// Unlike sobre un like inexistente es ErrNotFound y no toca contadores.
func (s *Service) Unlike(ctx context.Context, userID, postID int64) (Post, error) {
	ok, err := s.repo.DeleteLike(ctx, userID, postID)
	if err != nil {
		return Post{}, err
	}
	if !ok {
		return Post{}, fmt.Errorf("like: %w", apperr.ErrNotFound)
	}
	return s.repo.GetByID(ctx, postID)
}

func (s *Service) Likes(ctx context.Context, postID, viewerID int64) ([]Like, error) {
	if _, err := s.visible(ctx, postID, viewerID); err != nil {
		return nil, err
	}
	return s.repo.ListLikes(ctx, postID)
}

func (s *Service) Comment(ctx context.Context, userID, postID int64, content string) (Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Comment{}, fmt.Errorf("%w: content is required", apperr.ErrInvalidInput)
	}
	p, err := s.visible(ctx, postID, userID)
	if err != nil {
		return Comment{}, err
	}
	c, err := s.repo.CreateComment(ctx, Comment{PostID: postID, UserID: userID, Content: content})
	if err != nil {
		return Comment{}, err
	}
	if p.UserID != userID {
		s.notifier.Notify(ctx, p.UserID, notify.Payload{
			Kind:    notify.KindComment,
			Message: "someone commented on your post",
			Data:    map[string]any{"postId": postID, "commentId": c.ID, "userId": userID},
			SentAt:  s.now().UTC(),
		})
	}
	return c, nil
}

func (s *Service) Comments(ctx context.Context, postID, viewerID int64) ([]Comment, error) {
	if _, err := s.visible(ctx, postID, viewerID); err != nil {
		return nil, err
	}
	return s.repo.ListComments(ctx, postID)
}

// DeleteComment: lo puede borrar el autor o el dueño del post.
func (s *Service) DeleteComment(ctx context.Context, commentID, userID int64) error {
	c, err := s.repo.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	if c.UserID != userID {
		p, err := s.repo.GetByID(ctx, c.PostID)
		if err != nil || p.UserID != userID {
			return apperr.ErrForbidden
		}
	}
	return s.repo.DeleteComment(ctx, commentID)
}
