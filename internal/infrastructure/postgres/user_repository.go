package postgres

import (
	"context"
	"errors"

	domain "cinemacenter/backend/internal/domain/auth"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository persists users in PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
}

// Ensure UserRepository implements the domain interface.
var _ domain.UserRepository = (*UserRepository)(nil)

// NewUserRepository constructs a repository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const selectUser = `
SELECT u.id, u.username, u.password_hash, u.email, u.first_name, u.last_name, u.birthday,
       u.created_at, u.updated_at,
       COALESCE(array_agg(f.movie_id ORDER BY f.added_at) FILTER (WHERE f.movie_id IS NOT NULL), '{}')
FROM users u
LEFT JOIN user_favorite_movies f ON f.user_id = u.id
`

// Create inserts a new user record.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
INSERT INTO users (id, username, password_hash, email, first_name, last_name, birthday, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Birthday,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameExists
		}
		return err
	}
	return nil
}

// GetByUsername fetches a user by exact, case-sensitive username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, selectUser+`WHERE u.username = $1 GROUP BY u.id`, username)
	return scanUserRow(row)
}

// GetByID retrieves a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, selectUser+`WHERE u.id = $1 GROUP BY u.id`, id)
	return scanUserRow(row)
}

// Update modifies an existing user record.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
UPDATE users
SET username = $2, password_hash = $3, email = $4, first_name = $5, last_name = $6,
    birthday = $7, updated_at = $8
WHERE id = $1
`
	ct, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Birthday,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameExists
		}
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete removes a user by id. Favorites go with it.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM users WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// AddFavorite links a movie to the user. Linking twice is a no-op.
func (r *UserRepository) AddFavorite(ctx context.Context, userID, movieID string) error {
	const query = `
INSERT INTO user_favorite_movies (user_id, movie_id)
VALUES ($1, $2)
ON CONFLICT (user_id, movie_id) DO NOTHING
`
	if _, err := r.pool.Exec(ctx, query, userID, movieID); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return nil
}

// RemoveFavorite unlinks a movie from the user.
func (r *UserRepository) RemoveFavorite(ctx context.Context, userID, movieID string) error {
	const query = `DELETE FROM user_favorite_movies WHERE user_id = $1 AND movie_id = $2`
	ct, err := r.pool.Exec(ctx, query, userID, movieID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrUserNotFound
	}
	return nil
}

func scanUserRow(row pgx.Row) (*domain.User, error) {
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.Birthday,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.FavoriteMovies,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
