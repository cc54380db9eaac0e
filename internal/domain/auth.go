package domain

import (
	"context"
	"time"
)

// PasswordHasher hashes and verifies admin passwords.
type PasswordHasher interface {
	Hash(password string) (hash string, err error)
	Compare(hash, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated subject.
type TokenIssuer interface {
	Issue(subject string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}

// AuthService authenticates the admin user of the local API.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, err error)
}
