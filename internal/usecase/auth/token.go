package auth

import (
	"time"

	domain "cinemacenter/backend/internal/domain/auth"
)

// Identity is the subject a validated token vouches for.
type Identity struct {
	UserID    string
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenManager abstracts token issuance and verification.
// Validate reports domain.ErrExpiredToken for correctly signed but expired tokens
// and domain.ErrInvalidToken for everything else it rejects.
type TokenManager interface {
	Generate(user *domain.User) (string, error)
	Validate(token string) (*Identity, error)
}

// PasswordHasher hashes passwords one way and checks candidates against stored hashes.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}
