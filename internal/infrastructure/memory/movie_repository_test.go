package memory

import (
	"context"
	"testing"

	domain "cinemacenter/backend/internal/domain/movie"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovieRepository_SeedCatalog(t *testing.T) {
	ctx := context.Background()
	repo := NewMovieRepository(domain.SeedCatalog()...)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Dune: Part Two", list[0].Title)
	assert.Equal(t, "Gladiator", list[1].Title)
	assert.Equal(t, "Pulp Fiction", list[2].Title)
	for _, m := range list {
		assert.NotEmpty(t, m.ID)
	}

	m, err := repo.GetByTitle(ctx, "Gladiator")
	require.NoError(t, err)
	assert.Equal(t, "Ridley Scott", m.Director.Name)

	byID, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gladiator", byID.Title)

	genre, err := repo.GetGenre(ctx, "Sci-Fi")
	require.NoError(t, err)
	assert.Equal(t, "Sci-Fi", genre.Name)

	director, err := repo.GetDirector(ctx, "Quentin Tarantino")
	require.NoError(t, err)
	assert.NotEmpty(t, director.Bio)
}

func TestMovieRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewMovieRepository()

	_, err := repo.GetByTitle(ctx, "gladiator")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repo.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repo.GetGenre(ctx, "Western")
	assert.ErrorIs(t, err, domain.ErrGenreNotFound)
	_, err = repo.GetDirector(ctx, "Nobody")
	assert.ErrorIs(t, err, domain.ErrDirectorNotFound)
}
