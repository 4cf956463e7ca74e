package pets

import (
	"context"
	"encoding/json"
)

type Repository interface {
	Create(ctx context.Context, p Pet) (Pet, error)
	GetByID(ctx context.Context, id int64) (Pet, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]Pet, error)
	ListPublic(ctx context.Context) ([]Pet, error)
	Update(ctx context.Context, id int64, p Patch) (Pet, error)
	SetRecommendations(ctx context.Context, id int64, doc json.RawMessage) (Pet, error)
}
