package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"confadmin/internal/domain"
)

type authService struct {
	adminEmail   string
	passwordHash string
	hasher       domain.PasswordHasher
	tokens       domain.TokenIssuer
	jwtExpiry    time.Duration
}

// NewAuthService creates an AuthService for the single admin account described by
// adminEmail and its bcrypt passwordHash.
func NewAuthService(adminEmail, passwordHash string, hasher domain.PasswordHasher, tokens domain.TokenIssuer, jwtExpiry time.Duration) domain.AuthService {
	return &authService{
		adminEmail:   strings.TrimSpace(strings.ToLower(adminEmail)),
		passwordHash: passwordHash,
		hasher:       hasher,
		tokens:       tokens,
		jwtExpiry:    jwtExpiry,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	if s.adminEmail == "" || s.passwordHash == "" {
		return "", domain.ErrInvalidCredentials
	}
	email = strings.TrimSpace(strings.ToLower(email))
	if email != s.adminEmail {
		return "", domain.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(s.passwordHash, password); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(email, s.jwtExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}
