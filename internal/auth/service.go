package auth

import (
	"context"
	"errors"
	"time"

	"bookcatalog/internal/httpx"

	"github.com/google/uuid"
)

// Service issues, revokes and verifies bearer tokens. Its Verify method is
// the TokenVerifier the credential gate composes with.
type Service struct {
	secret   string
	tokenTTL time.Duration
	repo     Repository
}

func NewService(secret string, tokenTTL time.Duration, repo Repository) *Service {
	return &Service{secret: secret, tokenTTL: tokenTTL, repo: repo}
}

func (s *Service) Register(ctx context.Context, name, email, password string) (User, error) {
	_, err := s.repo.GetUserByEmail(ctx, email)
	if err == nil {
		return User{}, ErrEmailTaken
	}
	if !errors.Is(err, ErrUserNotFound) {
		return User{}, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return User{}, err
	}

	u := User{
		ID:       uuid.New().String(),
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     "USER",
	}
	if err := s.repo.CreateUser(ctx, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Login returns a signed access token and its lifetime in seconds.
func (s *Service) Login(ctx context.Context, email, password string) (string, int, error) {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil || !VerifyPassword(u.Password, password) {
		return "", 0, ErrInvalidCredentials
	}

	token, _, err := GenerateToken(s.secret, u.ID, u.Role, s.tokenTTL)
	if err != nil {
		return "", 0, err
	}
	return token, int(s.tokenTTL.Seconds()), nil
}

// Logout revokes the token by blacklisting its jti until the token would
// have expired anyway.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := ParseToken(s.secret, token)
	if err != nil {
		return ErrUnauthorized
	}

	expiresAt := time.Now().Add(24 * time.Hour)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return s.repo.BlacklistToken(ctx, claims.ID, claims.Sub, expiresAt)
}

// Verify resolves a bearer token to an identity, rejecting revoked tokens.
func (s *Service) Verify(ctx context.Context, token string) (httpx.Identity, error) {
	claims, err := ParseToken(s.secret, token)
	if err != nil {
		return httpx.Identity{}, ErrUnauthorized
	}

	if claims.ID != "" {
		blacklisted, err := s.repo.IsTokenBlacklisted(ctx, claims.ID)
		if err != nil {
			return httpx.Identity{}, err
		}
		if blacklisted {
			return httpx.Identity{}, ErrUnauthorized
		}
	}

	return httpx.Identity{UserID: claims.Sub, Role: claims.Role}, nil
}
