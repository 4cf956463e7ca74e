// Package storage define el contrato común de los dos backends (in-memory y relacional).
package storage

import (
	"context"

	"pet-social/internal/domain/follows"
	"pet-social/internal/domain/matches"
	"pet-social/internal/domain/medical"
	"pet-social/internal/domain/pets"
	"pet-social/internal/domain/posts"
	"pet-social/internal/domain/users"
)

// Store agrupa los repositorios por tipo de entidad.
// Ambas implementaciones deben ser intercambiables: mismas pre/post condiciones.
type Store interface {
	Users() users.Repository
	Pets() pets.Repository
	Posts() posts.Repository
	Follows() follows.Repository
	Matches() matches.Repository
	Medical() medical.Repository

	Ping(ctx context.Context) error
	Close() error
}
