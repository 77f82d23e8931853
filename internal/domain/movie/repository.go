package movie

import "context"

// Repository defines read behaviours for the movie catalog.
type Repository interface {
	List(ctx context.Context) ([]*Movie, error)
	GetByID(ctx context.Context, id string) (*Movie, error)
	GetByTitle(ctx context.Context, title string) (*Movie, error)
	GetGenre(ctx context.Context, name string) (*Genre, error)
	GetDirector(ctx context.Context, name string) (*Director, error)
	Create(ctx context.Context, movie *Movie) error
}
