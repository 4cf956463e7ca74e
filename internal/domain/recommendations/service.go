package recommendations

import (
	"context"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"pet-social/internal/domain/pets"
	"pet-social/internal/platform/apperr"
)

type Options struct {
	// AlwaysRegenerate ignora el documento guardado y llama siempre al generador.
	AlwaysRegenerate bool
	Logger           *zap.Logger
}

// Service cachea el documento sobre la mascota para no repetir llamadas al generador.
type Service struct {
	pets             pets.Repository
	gen              Generator
	alwaysRegenerate bool
	log              *zap.Logger

	flight singleflight.Group
}

// NewService espera un generador que no falle (ver WithFallback). Los
// documentos de fallback se sirven pero no se cachean.
func NewService(petRepo pets.Repository, gen Generator, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		pets:             petRepo,
		gen:              gen,
		alwaysRegenerate: opts.AlwaysRegenerate,
		log:              log,
	}
}

// GetOrGenerate devuelve el documento guardado salvo que AlwaysRegenerate esté activo.
func (s *Service) GetOrGenerate(ctx context.Context, petID int64) (Document, error) {
	p, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return Document{}, err
	}
	return s.getOrGenerate(ctx, p)
}

// Regenerate fuerza una llamada al generador y pisa lo guardado.
func (s *Service) Regenerate(ctx context.Context, petID int64) (Document, error) {
	p, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return Document{}, err
	}
	return s.generate(ctx, p)
}

// ForViewer aplica las reglas de acceso: una mascota privada solo la ve su
// dueño, y forzar la regeneración también es cosa del dueño.
func (s *Service) ForViewer(ctx context.Context, petID, viewerID int64, refresh bool) (Document, error) {
	p, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return Document{}, err
	}
	owner := p.OwnerID == viewerID
	if !p.VisibleTo(viewerID) {
		return Document{}, apperr.ErrNotFound
	}
	if refresh {
		if !owner {
			return Document{}, apperr.ErrForbidden
		}
		return s.generate(ctx, p)
	}
	return s.getOrGenerate(ctx, p)
}

// Prime precalienta el documento de una mascota recién creada. Best-effort:
// los errores solo se loguean.
func (s *Service) Prime(ctx context.Context, p pets.Pet) {
	if len(p.Recommendations) > 0 {
		return
	}
	if _, err := s.generate(ctx, p); err != nil {
		s.log.Warn("priming recommendations failed", zap.Int64("pet_id", p.ID), zap.Error(err))
	}
}

func (s *Service) getOrGenerate(ctx context.Context, p pets.Pet) (Document, error) {
	if !s.alwaysRegenerate && len(p.Recommendations) > 0 {
		doc, err := Unmarshal(p.Recommendations)
		if err == nil {
			return doc, nil
		}
		s.log.Warn("stored recommendations are unreadable, regenerating",
			zap.Int64("pet_id", p.ID), zap.Error(err))
	}
	return s.generate(ctx, p)
}

// generate deduplica llamadas concurrentes para la misma mascota. El vuelo
// compartido no depende de la cancelación del primer caller. El documento de
// fallback no se guarda: la próxima lectura vuelve a intentar el generador.
func (s *Service) generate(ctx context.Context, p pets.Pet) (Document, error) {
	ctx = context.WithoutCancel(ctx)
	v, err, _ := s.flight.Do(strconv.FormatInt(p.ID, 10), func() (any, error) {
		doc, outcome, err := outcomeOf(ctx, s.gen, SubjectOf(p))
		if err != nil {
			return Document{}, err
		}
		if outcome == OutcomeFallback {
			return doc, nil
		}
		raw, err := doc.Marshal()
		if err != nil {
			return Document{}, err
		}
		if _, err := s.pets.SetRecommendations(ctx, p.ID, raw); err != nil {
			return Document{}, err
		}
		s.log.Debug("recommendations stored", zap.Int64("pet_id", p.ID))
		return doc, nil
	})
	if err != nil {
		return Document{}, err
	}
	return v.(Document), nil
}

func SubjectOf(p pets.Pet) Subject {
	return Subject{
		Name:    p.Name,
		Species: p.Species,
		Breed:   p.Breed,
		Age:     p.Age,
		Gender:  string(p.Gender),
	}
}
