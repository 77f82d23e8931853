package postgres

import (
	"context"
	"errors"

	domain "cinemacenter/backend/internal/domain/movie"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MovieRepository reads the movie catalog from PostgreSQL.
type MovieRepository struct {
	pool *pgxpool.Pool
}

// Ensure MovieRepository implements the domain interface.
var _ domain.Repository = (*MovieRepository)(nil)

// NewMovieRepository constructs a repository.
func NewMovieRepository(pool *pgxpool.Pool) *MovieRepository {
	return &MovieRepository{pool: pool}
}

const selectMovie = `
SELECT id, title, description, genre_name, genre_description, director_name, director_bio,
       actors, image_path, featured
FROM movies
`

// Create inserts a movie, assigning an id when none is set.
func (r *MovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	const query = `
INSERT INTO movies (id, title, description, genre_name, genre_description, director_name, director_bio,
                    actors, image_path, featured)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`
	if movie.ID == "" {
		movie.ID = uuid.NewString()
	}
	actors := movie.Actors
	if actors == nil {
		actors = []string{}
	}
	_, err := r.pool.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Description,
		movie.Genre.Name,
		movie.Genre.Description,
		movie.Director.Name,
		movie.Director.Bio,
		actors,
		movie.ImagePath,
		movie.Featured,
	)
	return err
}

// List returns all movies sorted by title.
func (r *MovieRepository) List(ctx context.Context) ([]*domain.Movie, error) {
	rows, err := r.pool.Query(ctx, selectMovie+`ORDER BY title ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movies []*domain.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

// GetByID fetches a movie by id.
func (r *MovieRepository) GetByID(ctx context.Context, id string) (*domain.Movie, error) {
	return r.getOne(ctx, selectMovie+`WHERE id = $1`, id)
}

// GetByTitle fetches a movie by exact title.
func (r *MovieRepository) GetByTitle(ctx context.Context, title string) (*domain.Movie, error) {
	return r.getOne(ctx, selectMovie+`WHERE title = $1`, title)
}

// GetGenre returns genre details taken from a movie carrying that genre.
func (r *MovieRepository) GetGenre(ctx context.Context, name string) (*domain.Genre, error) {
	const query = `SELECT genre_name, genre_description FROM movies WHERE genre_name = $1 LIMIT 1`
	var g domain.Genre
	if err := r.pool.QueryRow(ctx, query, name).Scan(&g.Name, &g.Description); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGenreNotFound
		}
		return nil, err
	}
	return &g, nil
}

// GetDirector returns director details taken from one of their movies.
func (r *MovieRepository) GetDirector(ctx context.Context, name string) (*domain.Director, error) {
	const query = `SELECT director_name, director_bio FROM movies WHERE director_name = $1 LIMIT 1`
	var d domain.Director
	if err := r.pool.QueryRow(ctx, query, name).Scan(&d.Name, &d.Bio); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDirectorNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *MovieRepository) getOne(ctx context.Context, query string, arg string) (*domain.Movie, error) {
	m, err := scanMovie(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func scanMovie(row pgx.Row) (*domain.Movie, error) {
	var m domain.Movie
	err := row.Scan(
		&m.ID,
		&m.Title,
		&m.Description,
		&m.Genre.Name,
		&m.Genre.Description,
		&m.Director.Name,
		&m.Director.Bio,
		&m.Actors,
		&m.ImagePath,
		&m.Featured,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
