// Package memory implementa el Entity Store: mapas en memoria con ids numéricos
// y claves compuestas "{a}-{b}" para las entidades de unión.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pet-social/internal/domain/follows"
	"pet-social/internal/domain/matches"
	"pet-social/internal/domain/medical"
	"pet-social/internal/domain/pets"
	"pet-social/internal/domain/posts"
	"pet-social/internal/domain/users"
	"pet-social/internal/ports/storage"
)

// Store guarda todo bajo un único mutex: las operaciones que tocan más de un
// mapa (like + contador, match mutuo) quedan atómicas.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	seq map[string]int64

	users   map[int64]users.User
	pets    map[int64]pets.Pet
	posts   map[int64]posts.Post
	records map[int64]medical.Record

	likes    map[string]posts.Like // "{userID}-{postID}"
	comments map[int64]posts.Comment
	follows  map[string]follows.Follow // "{followerID}-{petID}"
	matches  map[int64]matches.Match
	matchKey map[string]int64 // "{userID}-{a}-{b}" -> match id
}

var _ storage.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		now:      storage.Now,
		seq:      make(map[string]int64),
		users:    make(map[int64]users.User),
		pets:     make(map[int64]pets.Pet),
		posts:    make(map[int64]posts.Post),
		records:  make(map[int64]medical.Record),
		likes:    make(map[string]posts.Like),
		comments: make(map[int64]posts.Comment),
		follows:  make(map[string]follows.Follow),
		matches:  make(map[int64]matches.Match),
		matchKey: make(map[string]int64),
	}
}

// WithClock reemplaza el reloj (tests).
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = func() time.Time { return storage.Timestamp(now()) }
	return s
}

func (s *Store) Users() users.Repository     { return &userRepo{s: s} }
func (s *Store) Pets() pets.Repository       { return &petRepo{s: s} }
func (s *Store) Posts() posts.Repository     { return &postRepo{s: s} }
func (s *Store) Follows() follows.Repository { return &followRepo{s: s} }
func (s *Store) Matches() matches.Repository { return &matchRepo{s: s} }
func (s *Store) Medical() medical.Repository { return &medicalRepo{s: s} }

func (s *Store) Ping(context.Context) error { return nil }
func (s *Store) Close() error               { return nil }

// nextID debe llamarse con el lock tomado.
func (s *Store) nextID(kind string) int64 {
	s.seq[kind]++
	return s.seq[kind]
}

func pairKey(a, b int64) string { return fmt.Sprintf("%d-%d", a, b) }
