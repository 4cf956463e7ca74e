package medical

import "context"

type Repository interface {
	Create(ctx context.Context, r Record) (Record, error)
	GetByID(ctx context.Context, id int64) (Record, error)
	// ListByPet ordena por fecha desc (más reciente primero).
	ListByPet(ctx context.Context, petID int64) ([]Record, error)
	Update(ctx context.Context, id int64, p Patch) (Record, error)
	Delete(ctx context.Context, id int64) error
}
