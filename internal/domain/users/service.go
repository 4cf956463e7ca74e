package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"pet-social/internal/platform/apperr"
)

type Service struct {
	repo Repository
	cost int
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, cost: bcrypt.DefaultCost}
}

// WithCost baja el costo de bcrypt (tests).
func (s *Service) WithCost(cost int) *Service {
	s.cost = cost
	return s
}

type RegisterInput struct {
	Email    string
	Username string
	Password string
	Name     string
	Location string
}

// Register guarda el hash bcrypt; el texto plano nunca llega al store.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	email := normalizeEmail(in.Email)
	username := strings.TrimSpace(in.Username)
	if email == "" || username == "" || in.Password == "" {
		return User{}, apperr.ErrInvalidInput
	}

	// Pre-check para un mensaje claro; el índice único sigue siendo la autoridad.
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, fmt.Errorf("%w: email", apperr.ErrConflict)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return User{}, err
	}
	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return User{}, fmt.Errorf("%w: username", apperr.ErrConflict)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return User{}, err
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return User{}, err
	}

	return s.repo.Create(ctx, User{
		Email:    email,
		Username: username,
		Password: hash,
		Name:     strings.TrimSpace(in.Name),
		Location: strings.TrimSpace(in.Location),
	})
}

// Authenticate compara contra el hash. Email inexistente y password
// incorrecto devuelven el mismo error.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, apperr.ErrNotFound) {
		return User{}, fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthorized)
	}
	if err != nil {
		return User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return User{}, fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthorized)
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id int64) (User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile hashea el password si viene en el patch.
func (s *Service) UpdateProfile(ctx context.Context, id int64, p Patch) (User, error) {
	if p.Password != nil {
		if *p.Password == "" {
			return User{}, apperr.ErrInvalidInput
		}
		hash, err := s.hash(*p.Password)
		if err != nil {
			return User{}, err
		}
		p.Password = &hash
	}
	return s.repo.Update(ctx, id, p)
}

func (s *Service) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err)
	}
	return string(b), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
