package follows

import "context"

type Repository interface {
	Create(ctx context.Context, followerID, petID int64) (Follow, error)
	Get(ctx context.Context, followerID, petID int64) (Follow, error)
	// Delete devuelve false si no existía.
	Delete(ctx context.Context, followerID, petID int64) (bool, error)
	ListByFollower(ctx context.Context, followerID int64) ([]Follow, error)
	ListByPet(ctx context.Context, petID int64) ([]Follow, error)
}
