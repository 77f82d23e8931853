package auth_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	domain "cinemacenter/backend/internal/domain/auth"
	"cinemacenter/backend/internal/infrastructure/memory"
	"cinemacenter/backend/internal/infrastructure/password"
	"cinemacenter/backend/internal/infrastructure/token"
	"cinemacenter/backend/internal/usecase/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestService_ConcurrentStrategies(t *testing.T) {
	ctx := context.Background()
	tokens, err := token.NewJWTManager("concurrency-secret", "cinema-center")
	require.NoError(t, err)
	hasher, err := password.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	svc := auth.NewService(memory.NewUserRepository(), tokens, hasher)

	alice, err := svc.Register(ctx, auth.RegisterInput{Username: "alice", Password: "alice-pw", Email: "alice@example.com"})
	require.NoError(t, err)
	bob, err := svc.Register(ctx, auth.RegisterInput{Username: "bobby", Password: "bob-pw", Email: "bob@example.com"})
	require.NoError(t, err)

	aliceToken, _, err := svc.Login(ctx, domain.Credentials{Username: "alice", Password: "alice-pw"})
	require.NoError(t, err)
	bobToken, _, err := svc.Login(ctx, domain.Credentials{Username: "bobby", Password: "bob-pw"})
	require.NoError(t, err)

	const workers = 16
	errs := make(chan error, workers*5)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			user, err := svc.VerifyToken(ctx, aliceToken)
			if err != nil || user.ID != alice.ID {
				errs <- fmt.Errorf("alice token resolved to %v: %v", user, err)
			}
			user, err = svc.VerifyToken(ctx, bobToken)
			if err != nil || user.ID != bob.ID {
				errs <- fmt.Errorf("bob token resolved to %v: %v", user, err)
			}
			if _, err := svc.VerifyToken(ctx, aliceToken+"x"); err == nil {
				errs <- errors.New("tampered token accepted")
			}

			user, err = svc.Authenticate(ctx, "alice", "alice-pw")
			if err != nil || user.PasswordHash != "" {
				errs <- fmt.Errorf("alice login: user %v err %v", user, err)
			}
			if _, err := svc.Authenticate(ctx, "ghost", "whatever"); !errors.Is(err, domain.ErrInvalidCredentials) {
				errs <- fmt.Errorf("unknown user: %v", err)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	_, err = svc.Authenticate(ctx, "bobby", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
