package movie

import (
	"context"
	"strings"

	domain "cinemacenter/backend/internal/domain/movie"
)

// Service encapsulates catalog use cases.
type Service struct {
	repo domain.Repository
}

// NewService constructs a movie service.
func NewService(repo domain.Repository) *Service {
	return &Service{repo: repo}
}

// List retrieves all movies.
func (s *Service) List(ctx context.Context) ([]*domain.Movie, error) {
	movies, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if movies == nil {
		movies = []*domain.Movie{}
	}
	return movies, nil
}

// GetByTitle fetches a movie by its exact title. A blank title is simply not found.
func (s *Service) GetByTitle(ctx context.Context, title string) (*domain.Movie, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.ErrNotFound
	}
	return s.repo.GetByTitle(ctx, title)
}

// Genre returns details about a genre by name.
func (s *Service) Genre(ctx context.Context, name string) (*domain.Genre, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrGenreNotFound
	}
	return s.repo.GetGenre(ctx, name)
}

// Director returns details about a director by name.
func (s *Service) Director(ctx context.Context, name string) (*domain.Director, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrDirectorNotFound
	}
	return s.repo.GetDirector(ctx, name)
}

// SeedIfEmpty loads catalog into the repository when it holds no movies yet.
// It returns the number of movies inserted.
func (s *Service) SeedIfEmpty(ctx context.Context, catalog []*domain.Movie) (int, error) {
	existing, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for _, m := range catalog {
		if err := s.repo.Create(ctx, m); err != nil {
			return 0, err
		}
	}
	return len(catalog), nil
}
