package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	domain "cinemacenter/backend/internal/domain/auth"
	moviedomain "cinemacenter/backend/internal/domain/movie"
	authusecase "cinemacenter/backend/internal/usecase/auth"
)

// Service provides account and favorites use cases for authenticated users.
type Service struct {
	repo    domain.UserRepository
	movies  moviedomain.Repository
	hasher  authusecase.PasswordHasher
	nowFunc func() time.Time
}

// NewService constructs a user service around the provided repositories.
func NewService(repo domain.UserRepository, movies moviedomain.Repository, hasher authusecase.PasswordHasher) *Service {
	return &Service{
		repo:    repo,
		movies:  movies,
		hasher:  hasher,
		nowFunc: time.Now,
	}
}

// UpdateInput defines the payload to update a user. Nil fields are left untouched.
type UpdateInput struct {
	Username *string
	Password *string
	Email     *string
	FirstName *string
	LastName  *string
	Birthday  *time.Time
}

// Get retrieves a single user by its identifier.
func (s *Service) Get(ctx context.Context, id string) (*domain.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrUserNotFound
	}
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

// Update modifies the persisted user. A new password is hashed before it is stored.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*domain.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrUserNotFound
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username == "" {
			return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
		}
		user.Username = username
	}
	if input.Password != nil {
		if *input.Password == "" {
			return nil, fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
		}
		hashed, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
	}
	if input.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*input.Email))
		if email == "" {
			return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
		}
		user.Email = email
	}
	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Birthday != nil {
		b := *input.Birthday
		user.Birthday = &b
	}

	user.UpdatedAt = s.nowFunc().UTC()
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return sanitizeUser(user), nil
}

// Delete removes the target user.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ErrUserNotFound
	}
	return s.repo.Delete(ctx, id)
}

// AddFavorite records movieID in the user's favorites. Adding twice is a no-op.
func (s *Service) AddFavorite(ctx context.Context, userID, movieID string) (*domain.User, error) {
	movieID = strings.TrimSpace(movieID)
	if movieID == "" {
		return nil, moviedomain.ErrNotFound
	}
	if _, err := s.movies.GetByID(ctx, movieID); err != nil {
		return nil, err
	}
	if err := s.repo.AddFavorite(ctx, userID, movieID); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

// RemoveFavorite drops movieID from the user's favorites.
func (s *Service) RemoveFavorite(ctx context.Context, userID, movieID string) (*domain.User, error) {
	movieID = strings.TrimSpace(movieID)
	if movieID == "" {
		return nil, moviedomain.ErrNotFound
	}
	if err := s.repo.RemoveFavorite(ctx, userID, movieID); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

func sanitizeUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	copy := *u
	copy.PasswordHash = ""
	if copy.FavoriteMovies == nil {
		copy.FavoriteMovies = []string{}
	}
	return &copy
}
