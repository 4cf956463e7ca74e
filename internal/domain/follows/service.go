package follows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pet-social/internal/domain/pets"
	"pet-social/internal/platform/apperr"
	"pet-social/internal/ports/notify"
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

// Follow verifica que la mascota exista y avisa al dueño. Una mascota
// privada no se puede seguir: para un extraño no existe.
func (s *Service) Follow(ctx context.Context, userID, petID int64) (Follow, error) {
	p, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return Follow{}, fmt.Errorf("pet: %w", err)
	}
	if p.OwnerID == userID {
		return Follow{}, fmt.Errorf("%w: cannot follow your own pet", apperr.ErrInvalidInput)
	}
	if !p.VisibleTo(userID) {
		return Follow{}, fmt.Errorf("pet: %w", apperr.ErrNotFound)
	}
	f, err := s.repo.Create(ctx, userID, petID)
	if err != nil {
		return Follow{}, err
	}
	s.notifier.Notify(ctx, p.OwnerID, notify.Payload{
		Kind:    notify.KindFollow,
		Message: fmt.Sprintf("%s has a new follower", p.Name),
		Data:    map[string]any{"petId": petID, "followerId": userID},
		SentAt:  s.now().UTC(),
	})
	return f, nil
}

func (s *Service) Unfollow(ctx context.Context, userID, petID int64) error {
	ok, err := s.repo.Delete(ctx, userID, petID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("follow: %w", apperr.ErrNotFound)
	}
	return nil
}

func (s *Service) Following(ctx context.Context, userID int64) ([]Follow, error) {
	return s.repo.ListByFollower(ctx, userID)
}

func (s *Service) Followers(ctx context.Context, petID, viewerID int64) ([]Follow, error) {
	p, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if !p.VisibleTo(viewerID) {
		return nil, apperr.ErrNotFound
	}
	return s.repo.ListByPet(ctx, petID)
}

// IsFollowing responde si userID sigue a petID.
func (s *Service) IsFollowing(ctx context.Context, userID, petID int64) (bool, error) {
	p, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return false, fmt.Errorf("pet: %w", err)
	}
	if !p.VisibleTo(userID) {
		return false, fmt.Errorf("pet: %w", apperr.ErrNotFound)
	}
	_, err = s.repo.Get(ctx, userID, petID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, apperr.ErrNotFound):
		return false, nil
	}
	return false, err
}
