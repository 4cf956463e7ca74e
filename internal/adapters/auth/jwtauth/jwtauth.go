// Package jwtauth emite y verifica tokens HS256 firmados con un secreto compartido.
package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"pet-social/internal/ports/auth"
)

var (
	ErrTokenEmpty   = errors.New("token is empty")
	ErrNoSecret     = errors.New("jwtauth: secret is empty")
	ErrInvalidToken = errors.New("jwtauth: invalid token")
)

const issuer = "pet-social"

type claims struct {
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// Auth implementa auth.AuthVerifier y auth.TokenIssuer.
type Auth struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func New(secret string, ttl time.Duration) (*Auth, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrNoSecret
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Auth{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// WithClock reemplaza el reloj (tests).
func (a *Auth) WithClock(now func() time.Time) *Auth {
	a.now = now
	return a
}

func (a *Auth) Issue(_ context.Context, c auth.Claims) (string, error) {
	if c.UserID <= 0 {
		return "", fmt.Errorf("%w: missing user id", ErrInvalidToken)
	}
	now := a.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Username: c.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(c.UserID, 10),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	})
	return tok.SignedString(a.secret)
}

func (a *Auth) Verify(_ context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	uid, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || uid <= 0 {
		return auth.Claims{}, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return auth.Claims{UserID: uid, Username: c.Username}, nil
}
