package memory

import (
	"context"
	"sort"
	"sync"

	domain "cinemacenter/backend/internal/domain/movie"

	"github.com/google/uuid"
)

// MovieRepository stores the catalog in memory.
type MovieRepository struct {
	mu     sync.RWMutex
	movies map[string]*domain.Movie
}

// Ensure MovieRepository implements the domain interface.
var _ domain.Repository = (*MovieRepository)(nil)

// NewMovieRepository constructs a repository holding the given movies.
// Movies without an id are assigned one.
func NewMovieRepository(seed ...*domain.Movie) *MovieRepository {
	r := &MovieRepository{movies: make(map[string]*domain.Movie, len(seed))}
	for _, m := range seed {
		_ = r.Create(context.Background(), m)
	}
	return r
}

// Create inserts a movie.
func (r *MovieRepository) Create(_ context.Context, movie *domain.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if movie.ID == "" {
		movie.ID = uuid.NewString()
	}
	c := *movie
	c.Actors = append([]string{}, movie.Actors...)
	r.movies[c.ID] = &c
	return nil
}

// List returns all movies sorted by title.
func (r *MovieRepository) List(_ context.Context) ([]*domain.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Movie, 0, len(r.movies))
	for _, m := range r.movies {
		c := *m
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

// GetByID fetches a movie by id.
func (r *MovieRepository) GetByID(_ context.Context, id string) (*domain.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.movies[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *m
	return &c, nil
}

// GetByTitle fetches a movie by exact title.
func (r *MovieRepository) GetByTitle(_ context.Context, title string) (*domain.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.movies {
		if m.Title == title {
			c := *m
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

// GetGenre returns the genre details of the first movie carrying it.
func (r *MovieRepository) GetGenre(_ context.Context, name string) (*domain.Genre, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.movies {
		if m.Genre.Name == name {
			g := m.Genre
			return &g, nil
		}
	}
	return nil, domain.ErrGenreNotFound
}

// GetDirector returns the details of the named director.
func (r *MovieRepository) GetDirector(_ context.Context, name string) (*domain.Director, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.movies {
		if m.Director.Name == name {
			d := m.Director
			return &d, nil
		}
	}
	return nil, domain.ErrDirectorNotFound
}
