package matches

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pet-social/internal/domain/pets"
	"pet-social/internal/platform/apperr"
	"pet-social/internal/ports/notify"
)

type Service struct {
	repo     Repository
	pets     pets.Repository
	notifier notify.Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewService(repo Repository, petRepo pets.Repository, n notify.Notifier, log *zap.Logger) *Service {
	if n == nil {
		n = notify.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, pets: petRepo, notifier: n, log: log, now: time.Now}
}

type SwipeInput struct {
	PetID       int64 // mascota propia que "swipea"
	TargetPetID int64
	Direction   Direction
}

// SwipeResult devuelve la fila del swiper y si el par quedó mutuo.
type SwipeResult struct {
	Match  Match
	Mutual bool
}

// Swipe registra la decisión de userID. Si es right y el dueño de la otra
// mascota ya había swipeado right sobre el mismo par, ambas filas pasan a
// IsMatch=true en una sola operación del store.
func (s *Service) Swipe(ctx context.Context, userID int64, in SwipeInput) (SwipeResult, error) {
	if !in.Direction.Valid() {
		return SwipeResult{}, fmt.Errorf("%w: direction must be left or right", apperr.ErrInvalidInput)
	}
	if in.PetID == in.TargetPetID {
		return SwipeResult{}, fmt.Errorf("%w: cannot swipe a pet on itself", apperr.ErrInvalidInput)
	}

	own, err := s.pets.GetByID(ctx, in.PetID)
	if err != nil {
		return SwipeResult{}, fmt.Errorf("pet: %w", err)
	}
	if own.OwnerID != userID {
		return SwipeResult{}, apperr.ErrForbidden
	}
	target, err := s.pets.GetByID(ctx, in.TargetPetID)
	if err != nil {
		return SwipeResult{}, fmt.Errorf("target pet: %w", err)
	}
	if target.OwnerID == userID {
		return SwipeResult{}, fmt.Errorf("%w: cannot swipe on your own pet", apperr.ErrInvalidInput)
	}
	if !target.VisibleTo(userID) {
		return SwipeResult{}, fmt.Errorf("target pet: %w", apperr.ErrNotFound)
	}

	m, err := s.repo.Create(ctx, Match{
		UserID:         userID,
		PetID1:         in.PetID,
		PetID2:         in.TargetPetID,
		SwipeDirection: in.Direction,
	})
	if err != nil {
		return SwipeResult{}, err
	}
	if in.Direction != DirectionRight {
		return SwipeResult{Match: m}, nil
	}

	other, err := s.repo.Get(ctx, target.OwnerID, in.PetID, in.TargetPetID)
	if errors.Is(err, apperr.ErrNotFound) || (err == nil && other.SwipeDirection != DirectionRight) {
		return SwipeResult{Match: m}, nil
	}
	if err != nil {
		return SwipeResult{}, err
	}

	if err := s.repo.MarkMutual(ctx, m.ID, other.ID); err != nil {
		return SwipeResult{}, err
	}
	m.IsMatch = true

	s.log.Info("mutual match",
		zap.Int64("pet_id1", m.PetID1), zap.Int64("pet_id2", m.PetID2),
		zap.Int64("user_a", userID), zap.Int64("user_b", target.OwnerID))

	pair := m.Pair()
	for _, n := range []struct {
		user int64
		own  int64
	}{{userID, in.PetID}, {target.OwnerID, in.TargetPetID}} {
		s.notifier.Notify(ctx, n.user, notify.Payload{
			Kind:    notify.KindMatch,
			Message: "it's a match!",
			Data:    map[string]any{"petId1": m.PetID1, "petId2": m.PetID2, "otherPetId": pair.Other(n.own)},
			SentAt:  s.now().UTC(),
		})
	}
	return SwipeResult{Match: m, Mutual: true}, nil
}

func (s *Service) Potential(ctx context.Context, userID int64) ([]pets.Pet, error) {
	return s.repo.ListPotential(ctx, userID)
}

// List devuelve los swipes del usuario; onlyMutual filtra IsMatch.
func (s *Service) List(ctx context.Context, userID int64, onlyMutual bool) ([]Match, error) {
	all, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !onlyMutual {
		return all, nil
	}
	out := make([]Match, 0, len(all))
	for _, m := range all {
		if m.IsMatch {
			out = append(out, m)
		}
	}
	return out, nil
}
