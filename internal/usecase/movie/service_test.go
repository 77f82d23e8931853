package movie

import (
	"context"
	"testing"

	domain "cinemacenter/backend/internal/domain/movie"
	"cinemacenter/backend/internal/infrastructure/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIfEmpty(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewMovieRepository())

	n, err := svc.SeedIfEmpty(ctx, domain.SeedCatalog())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = svc.SeedIfEmpty(ctx, domain.SeedCatalog())
	require.NoError(t, err)
	assert.Zero(t, n)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestLookups(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewMovieRepository(domain.SeedCatalog()...))

	m, err := svc.GetByTitle(ctx, " Pulp Fiction ")
	require.NoError(t, err)
	assert.Equal(t, "Crime", m.Genre.Name)

	g, err := svc.Genre(ctx, "Action")
	require.NoError(t, err)
	assert.Equal(t, "Action", g.Name)

	d, err := svc.Director(ctx, "Denis Villeneuve")
	require.NoError(t, err)
	assert.Equal(t, "Denis Villeneuve", d.Name)

	_, err = svc.GetByTitle(ctx, "Heat")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.GetByTitle(ctx, " ")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.Genre(ctx, "")
	assert.ErrorIs(t, err, domain.ErrGenreNotFound)
	_, err = svc.Director(ctx, " ")
	assert.ErrorIs(t, err, domain.ErrDirectorNotFound)
}

func TestList_EmptyIsNotNil(t *testing.T) {
	list, err := NewService(memory.NewMovieRepository()).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
