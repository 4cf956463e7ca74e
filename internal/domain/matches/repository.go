package matches

import (
	"context"

	"pet-social/internal/domain/pets"
)

type Repository interface {
	// Create normaliza el par; un segundo swipe del mismo usuario sobre el mismo par es conflicto.
	Create(ctx context.Context, m Match) (Match, error)
	GetByID(ctx context.Context, id int64) (Match, error)
	// Get busca por (userID, par no ordenado): el orden de petA/petB no importa.
	Get(ctx context.Context, userID, petA, petB int64) (Match, error)
	ListByUser(ctx context.Context, userID int64) ([]Match, error)
	// ListPotential: mascotas públicas que no son del usuario ni aparecen en
	// ningún match que involucre a una mascota del usuario.
	ListPotential(ctx context.Context, userID int64) ([]pets.Pet, error)
	// MarkMutual marca ambas filas con IsMatch=true de forma atómica.
	MarkMutual(ctx context.Context, ids ...int64) error
}
