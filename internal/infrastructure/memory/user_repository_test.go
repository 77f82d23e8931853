package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	domain "cinemacenter/backend/internal/domain/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, repo *UserRepository, id, username string) *domain.User {
	t.Helper()
	u := &domain.User{ID: id, Username: username, PasswordHash: "hash-" + id, Email: username + "@example.com"}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserRepository_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	seedUser(t, repo, "1", "alice")

	byName, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "1", byName.ID)
	assert.Equal(t, "hash-1", byName.PasswordHash)

	byID, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	_, err = repo.GetByUsername(ctx, "Alice")
	assert.ErrorIs(t, err, domain.ErrUserNotFound, "lookups are case-sensitive")

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	repo := NewUserRepository()
	seedUser(t, repo, "1", "alice")

	err := repo.Create(context.Background(), &domain.User{ID: "2", Username: "alice"})
	assert.ErrorIs(t, err, domain.ErrUsernameExists)
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	seedUser(t, repo, "1", "alice")

	u, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	u.Username = "mallory"
	u.FavoriteMovies = append(u.FavoriteMovies, "m1")

	again, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "alice", again.Username)
	assert.Empty(t, again.FavoriteMovies)
}

func TestUserRepository_UpdateRename(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	alice := seedUser(t, repo, "1", "alice")
	seedUser(t, repo, "2", "bobby")

	alice.Username = "bobby"
	assert.ErrorIs(t, repo.Update(ctx, alice), domain.ErrUsernameExists)

	alice.Username = "alicia"
	require.NoError(t, repo.Update(ctx, alice))

	_, err := repo.GetByUsername(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	got, err := repo.GetByUsername(ctx, "alicia")
	require.NoError(t, err)
	assert.Equal(t, "1", got.ID)

	assert.ErrorIs(t, repo.Update(ctx, &domain.User{ID: "nope", Username: "x"}), domain.ErrUserNotFound)
}

func TestUserRepository_Favorites(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	seedUser(t, repo, "1", "alice")

	require.NoError(t, repo.AddFavorite(ctx, "1", "m1"))
	require.NoError(t, repo.AddFavorite(ctx, "1", "m1"))
	require.NoError(t, repo.AddFavorite(ctx, "1", "m2"))

	u, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"m1", "m2"}, u.FavoriteMovies)

	require.NoError(t, repo.RemoveFavorite(ctx, "1", "m1"))
	u, err = repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"m2"}, u.FavoriteMovies)

	assert.ErrorIs(t, repo.AddFavorite(ctx, "x", "m1"), domain.ErrUserNotFound)
	assert.ErrorIs(t, repo.RemoveFavorite(ctx, "x", "m1"), domain.ErrUserNotFound)
}

func TestUserRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	seedUser(t, repo, "1", "alice")

	require.NoError(t, repo.Delete(ctx, "1"))
	_, err := repo.GetByUsername(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "1"), domain.ErrUserNotFound)
}

func TestUserRepository_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("u%d", i)
			_ = repo.Create(ctx, &domain.User{ID: id, Username: "user" + id})
			_, _ = repo.GetByID(ctx, id)
			_ = repo.AddFavorite(ctx, id, "m")
		}(i)
	}
	wg.Wait()

	for i := 0; i < 32; i++ {
		_, err := repo.GetByUsername(ctx, fmt.Sprintf("useru%d", i))
		assert.NoError(t, err)
	}
}
