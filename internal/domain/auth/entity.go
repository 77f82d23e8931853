package auth

import (
	"errors"
	"time"
)

var (
	// ErrInvalidCredentials indicates a login failure. It never says which half was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken means a supplied token is missing, malformed or carries a bad signature.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken means a correctly signed token is past its expiry.
	ErrExpiredToken = errors.New("token expired")
	// ErrUserNotFound indicates missing user.
	ErrUserNotFound = errors.New("user not found")
	// ErrPermissionDenied is returned when an authenticated caller acts on someone else's resource.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrConfiguration marks a missing or unusable signing secret.
	ErrConfiguration = errors.New("auth configuration error")
	// ErrUsernameExists signals a duplicate username registration.
	ErrUsernameExists = errors.New("username already taken")
	// ErrInvalidInput marks a missing or malformed account field.
	ErrInvalidInput = errors.New("invalid input")
	// ErrPasswordTooLong rejects passwords bcrypt cannot hash.
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
)

// User models the account entity persisted in storage.
type User struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	PasswordHash   string     `json:"-"`
	Email          string     `json:"email"`
	FirstName      string     `json:"firstName,omitempty"`
	LastName       string     `json:"lastName,omitempty"`
	Birthday       *time.Time `json:"birthday,omitempty"`
	FavoriteMovies []string   `json:"favoriteMovies"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// HasFavorite reports whether movieID is already in the favorites list.
func (u *User) HasFavorite(movieID string) bool {
	for _, id := range u.FavoriteMovies {
		if id == movieID {
			return true
		}
	}
	return false
}

// Credentials captures raw credential input for login.
type Credentials struct {
	Username string
	Password string
}
