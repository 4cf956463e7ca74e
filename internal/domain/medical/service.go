package medical

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pet-social/internal/domain/pets"
	"pet-social/internal/platform/apperr"
)

// Tipos conocidos. No se fuerza la lista: clínicas distintas usan otros.
const (
	TypeCheckup     = "checkup"
	TypeVaccination = "vaccination"
	TypeSurgery     = "surgery"
	TypeTreatment   = "treatment"
)

// Service: el historial clínico es privado; solo lo ve y edita el dueño.
type Service struct {
	repo Repository
	pets pets.Repository
	now  func() time.Time
}

func NewService(repo Repository, petRepo pets.Repository) *Service {
	return &Service{repo: repo, pets: petRepo, now: time.Now}
}

type CreateInput struct {
	Type          string
	Date          *time.Time // nil = ahora
	Diagnosis     string
	Treatment     string
	Notes         string
	Cost          float64
	VetName       string
	Prescriptions []Prescription
	NextDueDate   *time.Time
	Completed     bool
}

func (s *Service) Create(ctx context.Context, userID, petID int64, in CreateInput) (Record, error) {
	if err := s.authorize(ctx, userID, petID); err != nil {
		return Record{}, err
	}
	typ := strings.ToLower(strings.TrimSpace(in.Type))
	if typ == "" {
		return Record{}, fmt.Errorf("%w: type is required", apperr.ErrInvalidInput)
	}
	if in.Cost < 0 {
		return Record{}, fmt.Errorf("%w: cost must be >= 0", apperr.ErrInvalidInput)
	}
	date := s.now()
	if in.Date != nil {
		date = *in.Date
	}
	return s.repo.Create(ctx, Record{
		PetID:         petID,
		Type:          typ,
		Date:          date,
		Diagnosis:     strings.TrimSpace(in.Diagnosis),
		Treatment:     strings.TrimSpace(in.Treatment),
		Notes:         strings.TrimSpace(in.Notes),
		Cost:          in.Cost,
		VetName:       strings.TrimSpace(in.VetName),
		Prescriptions: in.Prescriptions,
		NextDueDate:   in.NextDueDate,
		Completed:     in.Completed,
	})
}

func (s *Service) List(ctx context.Context, userID, petID int64) ([]Record, error) {
	if err := s.authorize(ctx, userID, petID); err != nil {
		return nil, err
	}
	return s.repo.ListByPet(ctx, petID)
}

func (s *Service) Get(ctx context.Context, userID, id int64) (Record, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if err := s.authorize(ctx, userID, rec.PetID); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *Service) Update(ctx context.Context, userID, id int64, p Patch) (Record, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return Record{}, err
	}
	if p.Type != nil {
		t := strings.ToLower(strings.TrimSpace(*p.Type))
		if t == "" {
			return Record{}, fmt.Errorf("%w: type", apperr.ErrInvalidInput)
		}
		p.Type = &t
	}
	if p.Cost != nil && *p.Cost < 0 {
		return Record{}, fmt.Errorf("%w: cost must be >= 0", apperr.ErrInvalidInput)
	}
	return s.repo.Update(ctx, id, p)
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) authorize(ctx context.Context, userID, petID int64) error {
	p, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return fmt.Errorf("pet: %w", err)
	}
	if p.OwnerID != userID {
		return apperr.ErrForbidden
	}
	return nil
}
