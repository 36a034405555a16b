package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_auth_service.go -package=mocks -mock_names=AuthService=MockAuthService research-portfolio/internal/service AuthService

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"research-portfolio/internal/contextutil"
)

const adminSubject = "admin"

// Token is an issued admin bearer token.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// AuthService gates the admin operations behind the operator password.
type AuthService interface {
	// Login exchanges the admin password for a bearer token.
	Login(ctx context.Context, password string) (Token, error)
	// Verify checks a bearer token or the raw admin password.
	Verify(ctx context.Context, credential string) error
}

// authService implements AuthService.
type authService struct {
	password [sha256.Size]byte
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

// NewAuthService creates a new AuthService. password must be set. An empty
// secret is replaced with random bytes, so tokens do not survive a restart.
func NewAuthService(password string, secret []byte, ttl time.Duration) (AuthService, error) {
	if password == "" {
		return nil, errors.New("admin password is required")
	}
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate token secret: %w", err)
		}
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &authService{
		password: sha256.Sum256([]byte(password)),
		secret:   secret,
		ttl:      ttl,
		now:      time.Now,
	}, nil
}

var errInvalidPassword = newError(ErrUnauthorized, "Invalid password")

// passwordMatches compares digests so the comparison time does not depend on length.
func (s *authService) passwordMatches(candidate string) bool {
	sum := sha256.Sum256([]byte(candidate))
	return subtle.ConstantTimeCompare(sum[:], s.password[:]) == 1
}

func (s *authService) Login(ctx context.Context, password string) (Token, error) {
	logger := contextutil.LoggerFromContext(ctx)
	if !s.passwordMatches(password) {
		logger.WarnContext(ctx, "admin login rejected")
		return Token{}, errInvalidPassword
	}

	now := s.now()
	exp := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   adminSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Token{}, fmt.Errorf("failed to sign token: %w", err)
	}
	logger.InfoContext(ctx, "admin login", "expires_at", exp)
	return Token{Value: signed, ExpiresAt: exp}, nil
}

func (s *authService) Verify(ctx context.Context, credential string) error {
	if credential == "" {
		return newError(ErrUnauthorized, "Admin authentication required")
	}
	if s.passwordMatches(credential) {
		return nil
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(credential, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid || claims.Subject != adminSubject {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "admin token rejected", "error", err)
		return newError(ErrUnauthorized, "Invalid or expired admin token")
	}
	return nil
}
