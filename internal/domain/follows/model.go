package follows

import "time"

// Follow: un usuario sigue a una mascota (no a otro usuario).
// Único por (FollowerID, FollowedPetID).
type Follow struct {
	ID            int64
	FollowerID    int64
	FollowedPetID int64
	CreatedAt     time.Time
}
