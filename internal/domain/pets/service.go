package pets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pet-social/internal/domain/users"
	"pet-social/internal/platform/apperr"
)

type Service struct {
	repo  Repository
	users users.Repository

	afterCreate func(context.Context, Pet)
}

func NewService(repo Repository, userRepo users.Repository) *Service {
	return &Service{repo: repo, users: userRepo}
}

// OnCreate registra un hook best-effort que corre tras crear una mascota
// (lo usa el router para precalentar las recomendaciones).
func (s *Service) OnCreate(fn func(context.Context, Pet)) {
	s.afterCreate = fn
}

type CreateInput struct {
	Name                string
	Species             string
	Breed               string
	Age                 int
	Gender              Gender
	Weight              float64
	Color               string
	Bio                 string
	IsPublic            *bool // nil = true
	Photos              []string
	MicrochipID         string
	LastVaccinationDate *time.Time
	NextCheckupDate     *time.Time
	HealthTips          string
}

func (s *Service) Create(ctx context.Context, ownerID int64, in CreateInput) (Pet, error) {
	if ownerID <= 0 {
		return Pet{}, apperr.ErrUnauthorized
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Species) == "" {
		return Pet{}, fmt.Errorf("%w: name and species are required", apperr.ErrInvalidInput)
	}
	if in.Gender != "" && !in.Gender.Valid() {
		return Pet{}, fmt.Errorf("%w: gender", apperr.ErrInvalidInput)
	}
	if in.Age < 0 || in.Weight < 0 {
		return Pet{}, fmt.Errorf("%w: age and weight must be >= 0", apperr.ErrInvalidInput)
	}
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return Pet{}, fmt.Errorf("owner: %w", err)
	}

	public := true
	if in.IsPublic != nil {
		public = *in.IsPublic
	}

	p, err := s.repo.Create(ctx, Pet{
		OwnerID:             ownerID,
		Name:                strings.TrimSpace(in.Name),
		Species:             strings.TrimSpace(in.Species),
		Breed:               strings.TrimSpace(in.Breed),
		Age:                 in.Age,
		Gender:              in.Gender,
		Weight:              in.Weight,
		Color:               strings.TrimSpace(in.Color),
		Bio:                 strings.TrimSpace(in.Bio),
		IsPublic:            public,
		Photos:              in.Photos,
		MicrochipID:         strings.TrimSpace(in.MicrochipID),
		LastVaccinationDate: in.LastVaccinationDate,
		NextCheckupDate:     in.NextCheckupDate,
		HealthTips:          in.HealthTips,
	})
	if err != nil {
		return Pet{}, err
	}
	if s.afterCreate != nil {
		s.afterCreate(ctx, p)
	}
	return p, nil
}

// Get devuelve la mascota si es pública o si viewerID es el dueño.
// Una mascota privada ajena se reporta como inexistente.
func (s *Service) Get(ctx context.Context, id, viewerID int64) (Pet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	if !p.VisibleTo(viewerID) {
		return Pet{}, apperr.ErrNotFound
	}
	return p, nil
}

// GetOwned exige que userID sea el dueño.
func (s *Service) GetOwned(ctx context.Context, id, userID int64) (Pet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	if p.OwnerID != userID {
		return Pet{}, apperr.ErrForbidden
	}
	return p, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *Service) ListPublic(ctx context.Context) ([]Pet, error) {
	return s.repo.ListPublic(ctx)
}

// Update solo lo puede hacer el dueño.
func (s *Service) Update(ctx context.Context, id, userID int64, p Patch) (Pet, error) {
	if _, err := s.GetOwned(ctx, id, userID); err != nil {
		return Pet{}, err
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return Pet{}, fmt.Errorf("%w: name", apperr.ErrInvalidInput)
	}
	if p.Gender != nil && !p.Gender.Valid() {
		return Pet{}, fmt.Errorf("%w: gender", apperr.ErrInvalidInput)
	}
	return s.repo.Update(ctx, id, p)
}
