// Package memory keeps users and movies in process memory. It backs the
// STORAGE=memory mode and doubles as the repository fake in tests.
package memory

import (
	"context"
	"sync"

	domain "cinemacenter/backend/internal/domain/auth"
)

// UserRepository stores users in maps guarded by a mutex.
type UserRepository struct {
	mu         sync.RWMutex
	byID       map[string]*domain.User
	byUsername map[string]string
}

// Ensure UserRepository implements the domain interface.
var _ domain.UserRepository = (*UserRepository)(nil)

// NewUserRepository constructs an empty repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:       make(map[string]*domain.User),
		byUsername: make(map[string]string),
	}
}

// Create inserts a new user record.
func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUsername[user.Username]; ok {
		return domain.ErrUsernameExists
	}
	stored := cloneUser(user)
	r.byID[stored.ID] = stored
	r.byUsername[stored.Username] = stored.ID
	return nil
}

// GetByUsername fetches a user by exact username.
func (r *UserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(r.byID[id]), nil
}

// GetByID retrieves a user by id.
func (r *UserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(user), nil
}

// Update replaces the stored profile fields of an existing user.
func (r *UserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if user.Username != current.Username {
		if _, taken := r.byUsername[user.Username]; taken {
			return domain.ErrUsernameExists
		}
		delete(r.byUsername, current.Username)
		r.byUsername[user.Username] = user.ID
	}

	updated := cloneUser(user)
	updated.FavoriteMovies = current.FavoriteMovies
	updated.CreatedAt = current.CreatedAt
	if updated.PasswordHash == "" {
		updated.PasswordHash = current.PasswordHash
	}
	r.byID[user.ID] = updated
	return nil
}

// Delete removes a user by id.
func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byUsername, user.Username)
	delete(r.byID, id)
	return nil
}

// AddFavorite appends movieID to the user's favorites unless already present.
func (r *UserRepository) AddFavorite(_ context.Context, userID, movieID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if !user.HasFavorite(movieID) {
		user.FavoriteMovies = append(user.FavoriteMovies, movieID)
	}
	return nil
}

// RemoveFavorite drops movieID from the user's favorites.
func (r *UserRepository) RemoveFavorite(_ context.Context, userID, movieID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	kept := make([]string, 0, len(user.FavoriteMovies))
	for _, id := range user.FavoriteMovies {
		if id != movieID {
			kept = append(kept, id)
		}
	}
	user.FavoriteMovies = kept
	return nil
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	c.FavoriteMovies = append([]string{}, u.FavoriteMovies...)
	if u.Birthday != nil {
		b := *u.Birthday
		c.Birthday = &b
	}
	return &c
}
