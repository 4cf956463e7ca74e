// Package postgres implementa el Relational Store: gorm sobre un pool pgx.
// Las entidades de unión (likes, follows, matches) se protegen con índices
// únicos compuestos; los contadores se mueven con expresiones col = col + 1.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pet-social/internal/domain/follows"
	"pet-social/internal/domain/matches"
	"pet-social/internal/domain/medical"
	"pet-social/internal/domain/pets"
	"pet-social/internal/domain/posts"
	"pet-social/internal/domain/users"
	"pet-social/internal/platform/apperr"
	"pet-social/internal/ports/storage"
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Store es el Relational Store. Sirve para Postgres y, en tests, para sqlite.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

var _ storage.Store = (*Store)(nil)

// NewStore envuelve un pool pgx ya abierto con gorm.
func NewStore(sqlDB *sql.DB) (*Store, error) {
	db, err := gorm.Open(gormpg.New(gormpg.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm: %w", err)
	}
	return New(db), nil
}

// New usa una conexión gorm existente (cualquier dialecto).
func New(db *gorm.DB) *Store {
	return &Store{db: db, now: storage.Now}
}

// WithClock reemplaza el reloj (tests).
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = func() time.Time { return storage.Timestamp(now()) }
	return s
}

// AutoMigrate crea/actualiza tablas e índices.
func (s *Store) AutoMigrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&userRow{}, &petRow{}, &postRow{}, &likeRow{}, &commentRow{},
		&followRow{}, &matchRow{}, &recordRow{},
	)
}

func (s *Store) Users() users.Repository     { return &userRepo{s: s} }
func (s *Store) Pets() pets.Repository       { return &petRepo{s: s} }
func (s *Store) Posts() posts.Repository     { return &postRepo{s: s} }
func (s *Store) Follows() follows.Repository { return &followRepo{s: s} }
func (s *Store) Matches() matches.Repository { return &matchRepo{s: s} }
func (s *Store) Medical() medical.Repository { return &medicalRepo{s: s} }

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// translate lleva errores de gorm/driver a la taxonomía de apperr.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.ErrNotFound
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %v", apperr.ErrConflict, err)
	}
	return err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// sqlite sin traducción del dialecto
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
